package field

// Params holds the tuning constants of the pipeline.
//
// The values are empirically tuned for visual effect. Neg/Pos pairs apply to
// negative (polarity < 0.5) and positive anchors respectively.
type Params struct {
	// Disambiguation.
	RunTolerance     float64 // max score difference inside a run
	NeutralThreshold float64 // |score| below this marks a run as neutral
	SpreadWidth      float64 // width of the window a neutral run is spread over
	GradientWeight   float64
	HashWeight       float64
	FeatureWeight    float64
	LengthDivisor    float64 // word length that saturates the length factor

	// Base colors.
	HueScale     float64 // polarity 1 maps to this hue (0.83 ~ 300 degrees)
	SatBase      float64
	SatVowel     float64
	ValBase      float64
	ValLength    float64
	NeutralValue float64 // value of a fully neutral cell

	// Anchor classification and self boost.
	AnchorThreshold  float64 // |polarity-0.5| above this makes an anchor
	StrengthNeg      float64
	StrengthPos      float64
	ClusterRadius    float64 // grid distance for the anchor self boost
	ClusterStep      float64 // boost per same-class neighbor
	SelfSatNeg       float64
	SelfSatPos       float64
	SelfValNeg       float64
	SelfValPos       float64

	// Diffusion.
	NearbyRadius     float64 // grid distance for the nearby boost
	NearbyStep       float64
	GridWeightNeg    float64
	GridWeightPos    float64
	LinearWeightNeg  float64
	LinearWeightPos  float64
	LinearDivisor    float64 // sequence distance is divided by this
	DistanceScaleNeg float64
	DistanceScalePos float64
	NearbyShrink     float64 // distance shrink per unit of nearby boost
	BaseRadiusNeg    float64
	BaseRadiusPos    float64
	StrengthRadNeg   float64
	StrengthRadPos   float64
	NearbyInfluence  float64 // influence gain per unit of nearby boost
	AmplifierNeg     float64
	AmplifierPos     float64
	BlendGain        float64
	BlendCapNeg      float64
	BlendCapPos      float64

	// BatchSize is the number of followers evaluated per batch.
	BatchSize int
	// Workers bounds how many batches run at once. Values below 2 run
	// batches sequentially on the calling goroutine.
	Workers int
}

// DefaultBatchSize is the follower batch size used by DefaultParams.
const DefaultBatchSize = 1000

// DefaultParams returns the tuned constants.
func DefaultParams() Params {
	return Params{
		RunTolerance:     0.05,
		NeutralThreshold: 0.1,
		SpreadWidth:      0.2,
		GradientWeight:   0.6,
		HashWeight:       0.2,
		FeatureWeight:    0.2,
		LengthDivisor:    10,

		HueScale:     0.83,
		SatBase:      0.6,
		SatVowel:     0.4,
		ValBase:      0.7,
		ValLength:    0.3,
		NeutralValue: 0.95,

		AnchorThreshold: 0.35,
		StrengthNeg:     1.45,
		StrengthPos:     0.95,
		ClusterRadius:   3,
		ClusterStep:     0.15,
		SelfSatNeg:      1.4,
		SelfSatPos:      1.3,
		SelfValNeg:      1.3,
		SelfValPos:      1.25,

		NearbyRadius:     4,
		NearbyStep:       0.45,
		GridWeightNeg:    0.65,
		GridWeightPos:    0.7,
		LinearWeightNeg:  0.35,
		LinearWeightPos:  0.3,
		LinearDivisor:    7,
		DistanceScaleNeg: 0.85,
		DistanceScalePos: 1.0,
		NearbyShrink:     0.7,
		BaseRadiusNeg:    4.2,
		BaseRadiusPos:    3.8,
		StrengthRadNeg:   5.7,
		StrengthRadPos:   4.8,
		NearbyInfluence:  1.5,
		AmplifierNeg:     1.95,
		AmplifierPos:     1.5,
		BlendGain:        1.8,
		BlendCapNeg:      0.92,
		BlendCapPos:      0.88,

		BatchSize: DefaultBatchSize,
		Workers:   1,
	}
}

// pick returns neg for negative anchors and pos otherwise.
func pick(negative bool, neg, pos float64) float64 {
	if negative {
		return neg
	}
	return pos
}
