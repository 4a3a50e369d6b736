package domain

// FilterName es el enum cerrado de presets de /filter.
type FilterName string

const (
	FilterNone       FilterName = "none"
	FilterBassboost  FilterName = "bassboost"
	FilterNightcore  FilterName = "nightcore"
	FilterVaporwave  FilterName = "vaporwave"
	Filter8D         FilterName = "8d"
	FilterKaraoke    FilterName = "karaoke"
	FilterTremolo    FilterName = "tremolo"
	FilterVibrato    FilterName = "vibrato"
	FilterRotation   FilterName = "rotation"
	FilterDistortion FilterName = "distortion"
	FilterChannelMix FilterName = "channelmix"
	FilterLowPass    FilterName = "lowpass"
	FilterSlowmode   FilterName = "slowmode"
)

var AllFilters = []FilterName{
	FilterNone, FilterBassboost, FilterNightcore, FilterVaporwave, Filter8D, FilterKaraoke,
	FilterTremolo, FilterVibrato, FilterRotation, FilterDistortion, FilterChannelMix,
	FilterLowPass, FilterSlowmode,
}

// Filters sigue el objeto "filters" de Lavalink v4. nil = filtro apagado.
type Filters struct {
	Equalizer  []EqBand    `json:"equalizer,omitempty"`
	Karaoke    *Karaoke    `json:"karaoke,omitempty"`
	Timescale  *Timescale  `json:"timescale,omitempty"`
	Tremolo    *Tremolo    `json:"tremolo,omitempty"`
	Vibrato    *Vibrato    `json:"vibrato,omitempty"`
	Rotation   *Rotation   `json:"rotation,omitempty"`
	Distortion *Distortion `json:"distortion,omitempty"`
	ChannelMix *ChannelMix `json:"channelMix,omitempty"`
	LowPass    *LowPass    `json:"lowPass,omitempty"`
}

type EqBand struct {
	Band int     `json:"band"`
	Gain float64 `json:"gain"`
}

type Karaoke struct {
	Level       float64 `json:"level"`
	MonoLevel   float64 `json:"monoLevel"`
	FilterBand  float64 `json:"filterBand"`
	FilterWidth float64 `json:"filterWidth"`
}

type Timescale struct {
	Speed float64 `json:"speed"`
	Pitch float64 `json:"pitch"`
	Rate  float64 `json:"rate"`
}

type Tremolo struct {
	Frequency float64 `json:"frequency"`
	Depth     float64 `json:"depth"`
}

type Vibrato struct {
	Frequency float64 `json:"frequency"`
	Depth     float64 `json:"depth"`
}

type Rotation struct {
	RotationHz float64 `json:"rotationHz"`
}

type Distortion struct {
	SinOffset float64 `json:"sinOffset"`
	SinScale  float64 `json:"sinScale"`
	CosOffset float64 `json:"cosOffset"`
	CosScale  float64 `json:"cosScale"`
	TanOffset float64 `json:"tanOffset"`
	TanScale  float64 `json:"tanScale"`
	Offset    float64 `json:"offset"`
	Scale     float64 `json:"scale"`
}

type ChannelMix struct {
	LeftToLeft   float64 `json:"leftToLeft"`
	LeftToRight  float64 `json:"leftToRight"`
	RightToLeft  float64 `json:"rightToLeft"`
	RightToRight float64 `json:"rightToRight"`
}

type LowPass struct {
	Smoothing float64 `json:"smoothing"`
}

// Merge pisa con los filtros no-nil de p; el resto queda como estaba.
func (f Filters) Merge(p Filters) Filters {
	out := f
	if p.Equalizer != nil {
		out.Equalizer = append([]EqBand(nil), p.Equalizer...)
	}
	if p.Karaoke != nil {
		out.Karaoke = p.Karaoke
	}
	if p.Timescale != nil {
		out.Timescale = p.Timescale
	}
	if p.Tremolo != nil {
		out.Tremolo = p.Tremolo
	}
	if p.Vibrato != nil {
		out.Vibrato = p.Vibrato
	}
	if p.Rotation != nil {
		out.Rotation = p.Rotation
	}
	if p.Distortion != nil {
		out.Distortion = p.Distortion
	}
	if p.ChannelMix != nil {
		out.ChannelMix = p.ChannelMix
	}
	if p.LowPass != nil {
		out.LowPass = p.LowPass
	}
	return out
}
