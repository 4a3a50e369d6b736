package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jose-valero/lavalink-music-bot/internal/domain"
)

// presets de /filter; none no está porque limpia todo
var filterPresets = map[domain.FilterName]domain.Filters{
	domain.FilterBassboost:  {Equalizer: bassboostBands(3)},
	domain.FilterNightcore:  {Timescale: &domain.Timescale{Speed: 1, Pitch: 1, Rate: 1.5}},
	domain.FilterVaporwave:  {Timescale: &domain.Timescale{Speed: 1, Pitch: 0.5, Rate: 1}},
	domain.Filter8D:         {Rotation: &domain.Rotation{RotationHz: 0.2}},
	domain.FilterKaraoke:    {Karaoke: &domain.Karaoke{Level: 1, MonoLevel: 1, FilterBand: 220, FilterWidth: 100}},
	domain.FilterTremolo:    {Tremolo: &domain.Tremolo{Frequency: 2, Depth: 0.5}},
	domain.FilterVibrato:    {Vibrato: &domain.Vibrato{Frequency: 4, Depth: 0.5}},
	domain.FilterRotation:   {Rotation: &domain.Rotation{RotationHz: 0.2}},
	domain.FilterDistortion: {Distortion: &domain.Distortion{SinScale: 1, CosScale: 1, TanScale: 1, Scale: 1}},
	domain.FilterChannelMix: {ChannelMix: &domain.ChannelMix{LeftToLeft: 1, RightToRight: 1}},
	domain.FilterLowPass:    {LowPass: &domain.LowPass{Smoothing: 20}},
	domain.FilterSlowmode:   {Timescale: &domain.Timescale{Speed: 1, Pitch: 1, Rate: 0.8}},
}

// bassboostBands: 13 bandas con el mismo gain; value va de 0 a 10.
func bassboostBands(value float64) []domain.EqBand {
	gain := (value-1)*(1.25/9) - 0.25
	bands := make([]domain.EqBand, 13)
	for i := range bands {
		bands[i] = domain.EqBand{Band: i, Gain: gain}
	}
	return bands
}

// Preset devuelve los filtros de un nombre; ok=false si el nombre no existe.
func Preset(name domain.FilterName) (domain.Filters, bool) {
	if name == domain.FilterNone {
		return domain.Filters{}, true
	}
	f, ok := filterPresets[name]
	return f, ok
}

type FilterService struct {
	sessions *SessionService
}

func NewFilterService(sessions *SessionService) *FilterService {
	return &FilterService{sessions: sessions}
}

// Apply acumula el preset sobre los filtros activos; none los limpia todos.
func (s *FilterService) Apply(ctx context.Context, cmd domain.Command) (domain.Reply, error) {
	raw, _ := cmd.Args.String("filter")
	name := domain.FilterName(strings.ToLower(strings.TrimSpace(raw)))

	p, err := s.sessions.Require(cmd.GuildID)
	if err != nil {
		return domain.Reply{}, err
	}
	preset, ok := Preset(name)
	if !ok {
		return domain.Reply{}, &domain.RouterError{Code: domain.InvalidFilter, Subject: raw}
	}

	next := domain.Filters{}
	if name != domain.FilterNone {
		next = p.Filters().Merge(preset)
	}
	if err := p.SetFilters(ctx, next); err != nil {
		return domain.Reply{}, &domain.UpstreamError{Code: domain.AudioResolveFailed, Err: err}
	}

	label := string(name)
	if name == domain.FilterNone {
		label = "no"
	}
	return domain.Text(fmt.Sprintf("🎛️ Applied **%s** filter.", label)), nil
}

func filterList() string {
	names := make([]string, 0, len(domain.AllFilters))
	for _, f := range domain.AllFilters {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
