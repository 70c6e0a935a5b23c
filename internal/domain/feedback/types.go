package feedback

type Category string

const (
	CategoryService     Category = "SERVICE"
	CategoryFoodQuality Category = "FOOD_QUALITY"
	CategoryAmbience    Category = "AMBIENCE"
	CategoryCleanliness Category = "CLEANLINESS"
	CategoryPricing     Category = "PRICING"
	CategoryDelivery    Category = "DELIVERY"
	CategoryOther       Category = "OTHER"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryService, CategoryFoodQuality, CategoryAmbience,
		CategoryCleanliness, CategoryPricing, CategoryDelivery, CategoryOther:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Status tracks the staff triage lifecycle of a feedback entry. It is
// independent of the rating: a RESOLVED one-star review still counts one
// star in the aggregates.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusReviewed Status = "REVIEWED"
	StatusResolved Status = "RESOLVED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusResolved:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
