package booking

import (
	"math"
	"strings"
	"time"
)

type Money struct {
	minor int64
}

func NewMoney(minor int64) Money {
	return Money{minor: minor}
}

// MoneyFromAmount rounds a major-unit amount to the nearest minor unit.
func MoneyFromAmount(amount float64) Money {
	return Money{minor: int64(math.Round(amount * 100))}
}

func (m Money) Minor() int64      { return m.minor }
func (m Money) Amount() float64   { return float64(m.minor) / 100.0 }
func (m Money) IsNegative() bool  { return m.minor < 0 }
func (m Money) Sub(o Money) Money { return Money{minor: m.minor - o.minor} }

func (m Money) GreaterThan(o Money) bool {
	return m.minor > o.minor
}

type Fare struct {
	total    Money
	discount *Money
	final    Money
}

func NewFare(total Money) Fare {
	return Fare{total: total, final: total}
}

func ReconstructFare(total Money, discount *Money, final Money) Fare {
	return Fare{total: total, discount: discount, final: final}
}

func (f Fare) Total() Money     { return f.total }
func (f Fare) Discount() *Money { return f.discount }
func (f Fare) Final() Money     { return f.final }

type Cargo struct {
	description string
	weightKg    float64
	volumeM3    *float64
	category    string
}

func NewCargo(description string, weightKg float64, volumeM3 *float64, category string) (Cargo, error) {
	if weightKg <= 0 || math.IsNaN(weightKg) {
		return Cargo{}, ErrInvalidCargo
	}
	if volumeM3 != nil && (*volumeM3 < 0 || math.IsNaN(*volumeM3)) {
		return Cargo{}, ErrInvalidCargo
	}
	return Cargo{
		description: strings.TrimSpace(description),
		weightKg:    weightKg,
		volumeM3:    volumeM3,
		category:    strings.TrimSpace(category),
	}, nil
}

func (c Cargo) Description() string { return c.description }
func (c Cargo) WeightKg() float64   { return c.weightKg }
func (c Cargo) VolumeM3() *float64  { return c.volumeM3 }
func (c Cargo) Category() string    { return c.category }

type Contact struct {
	name  string
	phone string
}

func NewContact(name, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return Contact{}, ErrInvalidContact
	}
	return Contact{name: name, phone: phone}, nil
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Phone() string { return c.phone }

// Timeline records when each transition happened; nil means not reached.
type Timeline struct {
	AssignedAt       *time.Time
	AcceptedAt       *time.Time
	ReachedAt        *time.Time
	LoadingStartedAt *time.Time
	InTransitAt      *time.Time
	DeliveredAt      *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
}
