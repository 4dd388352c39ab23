package schedule

// Params defines all configurable parameters for the review scheduler.
//
// The default interval ladder (1/3/7/14/30 days for levels 1-5) is a tuned
// constant. It is kept configurable, but changing it changes when every item
// in a collection comes due, so overrides should be deliberate.
type Params struct {
	// IntervalDays maps a mastery level to the number of days until the
	// next review after a correct answer at that level.
	IntervalDays map[int]int

	// FallbackIntervalDays is used for any level not present in
	// IntervalDays, including level 0.
	FallbackIntervalDays int

	// MaxMasteryLevel caps the ladder. Reaching it marks the item mastered.
	MaxMasteryLevel int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	IntervalDays         map[int]int
	FallbackIntervalDays int
	MaxMasteryLevel      int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		IntervalDays: map[int]int{
			1: 1,
			2: 3,
			3: 7,
			4: 14,
			5: 30,
		},
		FallbackIntervalDays: 1,
		MaxMasteryLevel:      5,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if len(config.IntervalDays) > 0 {
		ladder := make(map[int]int, len(config.IntervalDays))
		for level, days := range config.IntervalDays {
			ladder[level] = days
		}
		params.IntervalDays = ladder
	}

	if config.FallbackIntervalDays > 0 {
		params.FallbackIntervalDays = config.FallbackIntervalDays
	}

	if config.MaxMasteryLevel > 0 {
		params.MaxMasteryLevel = config.MaxMasteryLevel
	}

	return params
}

// IntervalDaysFor returns the review interval in days for the given mastery
// level, falling back to FallbackIntervalDays for levels outside the ladder.
func (p *Params) IntervalDaysFor(level int) int {
	if days, ok := p.IntervalDays[level]; ok {
		return days
	}
	return p.FallbackIntervalDays
}
