package expression

import "time"

// Default returns the built-in catalog; happy is the fallback pick
func Default() *Catalog {
	return NewCatalog(Happy,
		Expression{
			Pose: Pose{
				Name:     Neutral,
				Eyes:     Eyes{Openness: 1},
				Mouth:    Mouth{Smile: 0.3, Width: 1},
				Movement: Movement{Bounce: 0.3, Speed: 1},
			},
			Duration: 3000 * time.Millisecond,
			Weight:   0,
		},
		Expression{
			Pose: Pose{
				Name:     Happy,
				Eyes:     Eyes{Openness: 1.1, LookY: -0.1, Squint: 0.2},
				Mouth:    Mouth{Smile: 0.8, Openness: 0.1, Width: 1.1},
				Movement: Movement{Bounce: 0.5, Speed: 1.3},
			},
			Duration: 2500 * time.Millisecond,
			Weight:   3,
		},
		Expression{
			Pose: Pose{
				Name:     Curious,
				Eyes:     Eyes{Openness: 1.15, LookX: 0.6, LookY: -0.2, Asymmetric: true},
				Mouth:    Mouth{Smile: 0.1, Openness: 0.3, Width: 0.7},
				Movement: Movement{Bounce: 0.2, Speed: 0.8, TiltX: 0.15},
			},
			Duration: 2800 * time.Millisecond,
			Weight:   2,
		},
		Expression{
			Pose: Pose{
				Name:     Sleepy,
				Eyes:     Eyes{Openness: 0.4, LookY: 0.3, Squint: 0.3},
				Mouth:    Mouth{Smile: 0.2, Width: 0.9},
				Movement: Movement{Bounce: 0.15, Speed: 0.5, DriftY: 0.05},
			},
			Duration: 4000 * time.Millisecond,
			Weight:   1,
		},
		Expression{
			Pose: Pose{
				Name:     Sleeping,
				Eyes:     Eyes{},
				Mouth:    Mouth{Smile: 0.2, Width: 0.9},
				Movement: Movement{Bounce: 0.1, Speed: 0.3, DriftY: 0.02},
			},
			Duration: Unbounded,
			Weight:   0,
		},
		Expression{
			Pose: Pose{
				Name:     Excited,
				Eyes:     Eyes{Openness: 1.3, LookY: -0.2, Sparkle: true},
				Mouth:    Mouth{Smile: 1, Openness: 0.4, Width: 1.2},
				Movement: Movement{Bounce: 0.7, Speed: 1.8},
			},
			Duration: 2000 * time.Millisecond,
			Weight:   2,
		},
		Expression{
			Pose: Pose{
				Name:     Thinking,
				Eyes:     Eyes{Openness: 0.9, LookX: -0.5, LookY: -0.5, Squint: 0.1},
				Mouth:    Mouth{Smile: 0, Width: 0.8, Offset: 0.2},
				Movement: Movement{Bounce: 0.1, Speed: 0.6, DriftY: -0.03},
			},
			Duration: 3500 * time.Millisecond,
			Weight:   2,
		},
		Expression{
			Pose: Pose{
				Name:     Wink,
				Eyes:     Eyes{Openness: 1, LookX: 0.2, WinkLeft: true},
				Mouth:    Mouth{Smile: 0.6, Width: 1},
				Movement: Movement{Bounce: 0.3, Speed: 1, TiltX: 0.1},
			},
			Duration: 1500 * time.Millisecond,
			Weight:   1,
		},
		Expression{
			Pose: Pose{
				Name:     Surprised,
				Eyes:     Eyes{Openness: 1.4},
				Mouth:    Mouth{Smile: 0, Openness: 0.7, Width: 0.6},
				Movement: Movement{Bounce: 0.4, Speed: 1.2},
			},
			Duration: 2000 * time.Millisecond,
			Weight:   1,
		},
		Expression{
			Pose: Pose{
				Name:     LookLeft,
				Eyes:     Eyes{Openness: 1, LookX: -0.8},
				Mouth:    Mouth{Smile: 0.2, Width: 1},
				Movement: Movement{Bounce: 0.2, Speed: 0.9, TiltX: -0.1},
			},
			Duration: 2500 * time.Millisecond,
			Weight:   2,
		},
		Expression{
			Pose: Pose{
				Name:     LookRight,
				Eyes:     Eyes{Openness: 1, LookX: 0.8},
				Mouth:    Mouth{Smile: 0.2, Width: 1},
				Movement: Movement{Bounce: 0.2, Speed: 0.9, TiltX: 0.1},
			},
			Duration: 2500 * time.Millisecond,
			Weight:   2,
		},
	)
}
