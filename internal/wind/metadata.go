package wind

// Metadata is the decode companion of a texture, served alongside it so an
// external renderer can recover component values from channel bytes.
type Metadata struct {
	Source string   `json:"source"`
	Date   string   `json:"date"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	UMin   float64  `json:"uMin"`
	UMax   float64  `json:"uMax"`
	VMin   float64  `json:"vMin"`
	VMax   float64  `json:"vMax"`
	Tiles  []string `json:"tiles"`
}

// NewMetadata builds the metadata record for a texture.
func NewMetadata(t *Texture, source, date string, tiles []string) Metadata {
	if tiles == nil {
		tiles = []string{}
	}
	return Metadata{
		Source: source,
		Date:   date,
		Width:  t.Width,
		Height: t.Height,
		UMin:   t.UMin,
		UMax:   t.UMax,
		VMin:   t.VMin,
		VMax:   t.VMax,
		Tiles:  tiles,
	}
}
