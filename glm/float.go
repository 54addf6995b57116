package glm

type float interface {
	~float32 | ~float64
}

type Numeric interface {
	float | ~uint32 | ~int32
}

// Rad is an angle in radians
type Rad float32
