package service

import "github.com/jose-valero/lavalink-music-bot/internal/domain"

type OptionKind int

const (
	OptionString OptionKind = iota
	OptionInteger
)

type Choice struct {
	Name  string
	Value string
}

type CommandOption struct {
	Name        string
	Description string
	Kind        OptionKind
	Required    bool
	MinValue    int
	Choices     []Choice
}

type CommandDef struct {
	Name        domain.CommandName
	Description string
	Options     []CommandOption
}

// Catalog: lo que se registra en Discord y lo que lista /help, en ese orden.
var Catalog = []CommandDef{
	{Name: domain.CmdPlay, Description: "Play a song or playlist", Options: []CommandOption{
		{Name: "query", Description: "Song name, URL, or Spotify link", Kind: OptionString, Required: true},
	}},
	{Name: domain.CmdPause, Description: "Pause the current song"},
	{Name: domain.CmdSkip, Description: "Skip the current song"},
	{Name: domain.CmdStop, Description: "Stop playback and clear the queue"},
	{Name: domain.CmdResume, Description: "Resume the paused song"},
	{Name: domain.CmdQueue, Description: "Show the current music queue"},
	{Name: domain.CmdHelp, Description: "Show all available music commands"},
	{Name: domain.CmdPlaylistCreate, Description: "Create a new playlist", Options: []CommandOption{
		{Name: "name", Description: "Name of the playlist", Kind: OptionString, Required: true},
	}},
	{Name: domain.CmdPlaylistDelete, Description: "Delete a playlist", Options: []CommandOption{
		{Name: "name", Description: "Name of the playlist", Kind: OptionString, Required: true},
	}},
	{Name: domain.CmdPlaylistAdd, Description: "Add a song to a playlist", Options: []CommandOption{
		{Name: "name", Description: "Name of the playlist", Kind: OptionString, Required: true},
		{Name: "query", Description: "Song name or URL", Kind: OptionString, Required: true},
	}},
	{Name: domain.CmdPlaylistRemove, Description: "Remove a song from a playlist", Options: []CommandOption{
		{Name: "name", Description: "Name of the playlist", Kind: OptionString, Required: true},
		{Name: "index", Description: "Index of the song to remove (1-based)", Kind: OptionInteger, Required: true, MinValue: 1},
	}},
	{Name: domain.CmdPlaylistPlay, Description: "Play a saved playlist", Options: []CommandOption{
		{Name: "name", Description: "Name of the playlist", Kind: OptionString, Required: true},
	}},
	{Name: domain.CmdFilter, Description: "Apply an audio filter", Options: []CommandOption{
		{Name: "filter", Description: "The filter to apply", Kind: OptionString, Required: true, Choices: filterChoices()},
	}},
	{Name: domain.CmdLyrics, Description: "Fetch lyrics for the current song or a specified song", Options: []CommandOption{
		{Name: "query", Description: "Song name to search for lyrics (optional)", Kind: OptionString},
	}},
}

var filterLabels = map[domain.FilterName]string{
	domain.FilterNone:       "None",
	domain.FilterBassboost:  "Bassboost",
	domain.FilterNightcore:  "Nightcore",
	domain.FilterVaporwave:  "Vaporwave",
	domain.Filter8D:         "8D",
	domain.FilterKaraoke:    "Karaoke",
	domain.FilterTremolo:    "Tremolo",
	domain.FilterVibrato:    "Vibrato",
	domain.FilterRotation:   "Rotation",
	domain.FilterDistortion: "Distortion",
	domain.FilterChannelMix: "Channel Mix",
	domain.FilterLowPass:    "Low Pass",
	domain.FilterSlowmode:   "Slowmode",
}

func filterChoices() []Choice {
	out := make([]Choice, 0, len(domain.AllFilters))
	for _, f := range domain.AllFilters {
		out = append(out, Choice{Name: filterLabels[f], Value: string(f)})
	}
	return out
}
