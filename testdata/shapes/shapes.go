package shapes

// User is a plain record.
//
// @derive(debug, rename = "user")
type User struct {
	// @derive(skip)
	ID          int64
	Name, Email string // @derive(rename = "full_name")
	Base
	Tags []string
}

type Base struct {
	CreatedAt int64
}

// Marker has no fields.
//
// @derive(marker, broken(
type Marker struct{}

// Shape is a sealed sum type.
//
// @derive(visit)
type Shape interface {
	isShape()
}

type Circle struct {
	Radius float64
}

func (Circle) isShape() {}

/*
 * @derive(rename = "sq")
 */
type Square struct{ Side float64 }

func (*Square) isShape() {}

type Origin struct{}

func (Origin) isShape() {}

// Number is a union of numeric types.
type Number interface {
	~int | ~float64
}

// Stringer is open to any implementation and is not an item.
type Stringer interface {
	String() string
}

// ID is not a struct or interface.
type ID int64
