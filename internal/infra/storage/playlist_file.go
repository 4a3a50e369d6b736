package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// PlaylistFile guarda todas las playlists en un único archivo JSON.
// Cada operación lee el archivo entero, lo modifica y lo reescribe, sin cache en memoria.
// mu serializa load+write dentro del proceso; cada write usa su propio archivo temporal.
type PlaylistFile struct {
	path string
	mu   sync.Mutex
}

func NewPlaylistFile(path string) *PlaylistFile {
	return &PlaylistFile{path: path}
}

func (f *PlaylistFile) Path() string { return f.path }

// Load lee el documento. Si el archivo no existe lo crea vacío ("{}").
func (f *PlaylistFile) Load(_ context.Context) (Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *PlaylistFile) load() (Document, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := f.write(Document{}); err != nil {
			return nil, err
		}
		return Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read playlists: %w", err)
	}

	doc := Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Save reemplaza el archivo completo (lo usa el import del CLI).
func (f *PlaylistFile) Save(_ context.Context, doc Document) error {
	if doc == nil {
		doc = Document{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(doc)
}

func (f *PlaylistFile) Create(ctx context.Context, userID, name string) error {
	return f.mutate(ctx, func(doc Document) error {
		lists := doc[userID]
		if lists == nil {
			lists = map[string][]domain.TrackRef{}
			doc[userID] = lists
		}
		if _, ok := lists[name]; ok {
			return exists(name)
		}
		lists[name] = []domain.TrackRef{}
		return nil
	})
}

func (f *PlaylistFile) Delete(ctx context.Context, userID, name string) error {
	return f.mutate(ctx, func(doc Document) error {
		if _, ok := doc[userID][name]; !ok {
			return absent(name)
		}
		delete(doc[userID], name)
		return nil
	})
}

func (f *PlaylistFile) Append(ctx context.Context, userID, name string, t domain.TrackRef) error {
	return f.mutate(ctx, func(doc Document) error {
		refs, ok := doc[userID][name]
		if !ok {
			return absent(name)
		}
		doc[userID][name] = append(refs, t)
		return nil
	})
}

// RemoveAt recibe índice 0-based.
func (f *PlaylistFile) RemoveAt(ctx context.Context, userID, name string, index int) (domain.TrackRef, error) {
	var removed domain.TrackRef
	err := f.mutate(ctx, func(doc Document) error {
		refs, ok := doc[userID][name]
		if !ok {
			return absent(name)
		}
		if index < 0 || index >= len(refs) {
			return outOfRange(name)
		}
		removed = refs[index]
		doc[userID][name] = append(refs[:index:index], refs[index+1:]...)
		return nil
	})
	return removed, err
}

func (f *PlaylistFile) List(ctx context.Context, userID, name string) ([]domain.TrackRef, error) {
	doc, err := f.Load(ctx)
	if err != nil {
		return nil, err
	}
	refs, ok := doc[userID][name]
	if !ok {
		return nil, absent(name)
	}
	return refs, nil
}

// mutate: load -> fn -> write bajo el lock. Si fn falla no se escribe nada.
func (f *PlaylistFile) mutate(_ context.Context, fn func(Document) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return f.write(doc)
}

// write hace tmp + fsync + rename para no dejar el archivo a medias.
func (f *PlaylistFile) write(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal playlists: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create playlists dir: %w", err)
		}
	}

	// temporal único por escritura: dos procesos sobre el mismo path no se pisan el .tmp
	file, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := file.Name()
	if err := file.Chmod(0o644); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
