package theme

// DefaultFontFamily is the CSS font stack used for all rendered text.
const DefaultFontFamily = "Inter, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif"

// Rank directions accepted by the layout stage.
const (
	RankTB = "TB"
	RankBT = "BT"
	RankLR = "LR"
	RankRL = "RL"
)

// RankDirs lists the accepted rank directions.
var RankDirs = []string{RankTB, RankBT, RankLR, RankRL}

// Config carries typography and layout defaults. It is built once and passed
// by pointer; nothing mutates it after construction.
type Config struct {
	FontFamily    string
	TitleFontSize float64
	LineHeight    float64
	Padding       float64
	BorderRadius  float64

	// Layout defaults, in pixels.
	RankDir string
	NodeSep float64
	RankSep float64
}

var defaultConfig = Config{
	FontFamily:    DefaultFontFamily,
	TitleFontSize: 16,
	LineHeight:    1.4,
	Padding:       20,
	BorderRadius:  8,
	RankDir:       RankTB,
	NodeSep:       50,
	RankSep:       70,
}

// DefaultConfig returns the shared default configuration.
func DefaultConfig() *Config {
	return &defaultConfig
}

// ValidRankDir reports whether dir is one of TB, BT, LR or RL.
func ValidRankDir(dir string) bool {
	for _, d := range RankDirs {
		if d == dir {
			return true
		}
	}
	return false
}
