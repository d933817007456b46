package placement

import (
	"github.com/lixenwraith/dropzone/hittest"
)

// Design defaults
const (
	DefaultWrongCeiling   = 6
	DefaultShuffleRetries = 10
)

// Config tunes the rule engine
type Config struct {
	ThresholdRatio float64 // Fraction of item edge used as drop threshold
	Threshold      float64 // Absolute threshold; overrides ratio when > 0
	ItemWidth      float64 // Draggable item edge used with ThresholdRatio
	ItemHeight     float64

	WrongCeiling   int  // Sort: wrong drops that force completion(false); 0 disables
	CountMisses    bool // Sort: a drop on no target counts as a wrong attempt
	ShuffleRetries int  // Puzzle: re-rolls before the forced swap fallback

	Seed uint64 // Shuffle seed; 0 picks a time-based seed
}

// DefaultConfig returns the design defaults for an item of the given size
func DefaultConfig(itemWidth, itemHeight float64) Config {
	return Config{
		ThresholdRatio: hittest.DefaultThresholdRatio,
		ItemWidth:      itemWidth,
		ItemHeight:     itemHeight,
		WrongCeiling:   DefaultWrongCeiling,
		CountMisses:    true,
		ShuffleRetries: DefaultShuffleRetries,
	}
}

// DropThreshold resolves the effective center-distance threshold
func (c Config) DropThreshold() float64 {
	if c.Threshold > 0 {
		return c.Threshold
	}
	return hittest.Threshold(c.ItemWidth, c.ThresholdRatio)
}
