package core

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"
)

const (
	CategoryWork     TaskCategory = "Work"
	CategoryGym      TaskCategory = "Gym"
	CategoryReminder TaskCategory = "Reminder"
)

const (
	StatusPotential   LeadStatus = "Potential"
	StatusNegotiating LeadStatus = "Negotiating"
	StatusActive      LeadStatus = "Active"
	StatusArchived    LeadStatus = "Archived"
)

const (
	PaymentPaid    PaymentState = "Paid"
	PaymentPending PaymentState = "Pending"
)

// Layouts for the date-keyed fields carried on tasks and lead payments.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	ClockLayout = "15:04"
)

type (
	TaskCategory string

	LeadStatus string

	PaymentState string

	// User is the public identity of an account, keyed by email.
	User struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	// Financials is a single mutable snapshot with no history. Remaining
	// balance and committed percentage are derived, never stored.
	Financials struct {
		Salary   float64 `json:"salary"`
		Expenses float64 `json:"expenses"`
	}

	Task struct {
		ID        string       `json:"id"`
		Text      string       `json:"text"`
		Completed bool         `json:"completed"`
		Time      string       `json:"time"` // HH:MM
		Date      string       `json:"date"` // YYYY-MM-DD
		Category  TaskCategory `json:"category"`
	}

	Lead struct {
		ID          string                  `json:"id"`
		Name        string                  `json:"name"`
		Company     string                  `json:"company"`
		Status      LeadStatus              `json:"status"`
		Value       float64                 `json:"value"`
		LastContact string                  `json:"lastContact"`
		Phone       string                  `json:"phone,omitempty"`
		Notes       string                  `json:"notes,omitempty"`
		Payments    map[string]PaymentState `json:"payments,omitempty"`
	}

	Goal struct {
		ID           string  `json:"id"`
		Title        string  `json:"title"`
		TargetValue  float64 `json:"targetValue"`
		CurrentValue float64 `json:"currentValue"`
		Deadline     string  `json:"deadline"`
		Unit         string  `json:"unit"`
	}

	// AppData is the full set of one account's collections. SeededDate marks
	// the last day default tasks were generated for this account.
	AppData struct {
		Tasks      []Task     `json:"tasks"`
		Leads      []Lead     `json:"leads"`
		Goals      []Goal     `json:"goals"`
		Financials Financials `json:"financials"`
		SeededDate string     `json:"seededDate,omitempty"`
	}
)

var (
	ErrEmptyText       = errors.New("empty task text")
	ErrInvalidCategory = errors.New("invalid task category")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time of day")
	ErrEmptyName       = errors.New("empty lead name")
	ErrInvalidStatus   = errors.New("invalid lead status")
	ErrInvalidValue    = errors.New("invalid monetary value")
	ErrEmptyTitle      = errors.New("empty goal title")
	ErrInvalidTarget   = errors.New("invalid goal target")
)

// Clone returns a deep copy of the collections. Every slice and payment map
// is detached, so the copy can be read while the original keeps mutating.
func (d AppData) Clone() AppData {
	out := d
	out.Tasks = slices.Clone(d.Tasks)
	out.Goals = slices.Clone(d.Goals)
	out.Leads = slices.Clone(d.Leads)
	for i := range out.Leads {
		out.Leads[i].Payments = maps.Clone(out.Leads[i].Payments)
	}
	return out
}

// Pipeline returns the ordered CRM pipeline columns.
func Pipeline() []LeadStatus {
	return []LeadStatus{StatusPotential, StatusNegotiating, StatusActive, StatusArchived}
}

func (c TaskCategory) Valid() bool {
	switch c {
	case CategoryWork, CategoryGym, CategoryReminder:
		return true
	default:
		return false
	}
}

func (s LeadStatus) Valid() bool {
	switch s {
	case StatusPotential, StatusNegotiating, StatusActive, StatusArchived:
		return true
	default:
		return false
	}
}

// DateKey formats t as the calendar-day key used across tasks and stats.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey formats t as the year-month key used by lead payments.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// ClockKey formats t as the HH:MM time-of-day carried on tasks.
func ClockKey(t time.Time) string {
	return t.Format(ClockLayout)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return ErrInvalidDate
	}
	if _, err := time.Parse(ClockLayout, t.Time); err != nil {
		return ErrInvalidTime
	}
	return nil
}

// DueAt resolves the task's date and time into a wall-clock instant in loc.
func (t Task) DueAt(loc *time.Location) (time.Time, error) {
	due, err := time.ParseInLocation(DateLayout+"T"+ClockLayout, t.Date+"T"+t.Time, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return due, nil
}

func (l Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if !l.Status.Valid() {
		return ErrInvalidStatus
	}
	if l.Value <= 0 {
		return ErrInvalidValue
	}
	return nil
}

// PaymentFor returns the payment state for the given year-month key. The
// payments mapping is sparse; an absent entry reads as Pending.
func (l Lead) PaymentFor(monthKey string) PaymentState {
	if state, ok := l.Payments[monthKey]; ok {
		return state
	}
	return PaymentPending
}

// TogglePayment flips the payment state for the given year-month key and
// returns the new state. Entries for other months are untouched.
func (l *Lead) TogglePayment(monthKey string) PaymentState {
	if l.Payments == nil {
		l.Payments = make(map[string]PaymentState)
	}
	next := PaymentPaid
	if l.PaymentFor(monthKey) == PaymentPaid {
		next = PaymentPending
	}
	l.Payments[monthKey] = next
	return next
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.TargetValue <= 0 {
		return ErrInvalidTarget
	}
	return nil
}

// Advance moves the goal's current value by amount, clamped to the target.
// The currentValue <= targetValue invariant is enforced here and only here.
func (g *Goal) Advance(amount float64) {
	next := g.CurrentValue + amount
	if next > g.TargetValue {
		next = g.TargetValue
	}
	g.CurrentValue = next
}

// Progress returns the goal's completion percentage, capped at 100.
func (g Goal) Progress() int {
	if g.TargetValue <= 0 {
		return 0
	}
	p := int(g.CurrentValue/g.TargetValue*100 + 0.5)
	if p > 100 {
		p = 100
	}
	return p
}

func (g Goal) Completed() bool {
	return g.Progress() == 100
}

// Remaining returns the balance left after expenses.
func (f Financials) Remaining() float64 {
	return f.Salary - f.Expenses
}

// CommittedPercent returns how much of the salary is committed to expenses,
// capped at 100. A zero salary reads as 0.
func (f Financials) CommittedPercent() int {
	if f.Salary <= 0 {
		return 0
	}
	p := int(f.Expenses/f.Salary*100 + 0.5)
	if p > 100 {
		p = 100
	}
	return p
}

// ActiveRevenue sums the monthly value of Active leads.
func ActiveRevenue(leads []Lead) float64 {
	var total float64
	for _, l := range leads {
		if l.Status == StatusActive {
			total += l.Value
		}
	}
	return total
}
