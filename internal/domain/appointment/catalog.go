package appointment

import "github.com/BruksfildServices01/bank-booking-portal/internal/calendar"

type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Branch struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

var services = []Service{
	{ID: "transact", Name: "Transact", Duration: "10 min", Description: "Payments, getting paid and managing your money on the app"},
	{ID: "save", Name: "Save", Duration: "15 min", Description: "Savings plans, notice deposits and fixed-term savings"},
	{ID: "insure", Name: "Insure", Duration: "15 min", Description: "Funeral, life and credit insurance cover"},
	{ID: "business-enquiry", Name: "Business Enquiry", Duration: "20 min", Description: "Business accounts, merchant services and business credit"},
	{ID: "credit", Name: "Credit", Duration: "15 min", Description: "Personal loans, credit cards, access facilities and home loans"},
	{ID: "connect", Name: "Connect", Duration: "10 min", Description: "Prepaid bundles, Connect SIMs and devices"},
}

var branches = []Branch{
	{ID: "downtown", Name: "Downtown Branch", Address: "123 Main Street, Suite 100"},
	{ID: "westside", Name: "Westside Branch", Address: "456 Oak Avenue"},
	{ID: "northgate", Name: "Northgate Branch", Address: "789 Pine Boulevard"},
}

func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

func Branches() []Branch {
	out := make([]Branch, len(branches))
	copy(out, branches)
	return out
}

func FindService(id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

func FindBranch(id string) (Branch, bool) {
	for _, b := range branches {
		if b.ID == id {
			return b, true
		}
	}
	return Branch{}, false
}

// ===============================
// Branch hours
// ===============================

// Hours describe the bookable day. The last slot starts at LastSlot and
// slots overlapping the lunch window stay listed but unavailable.
type Hours struct {
	FirstSlot  calendar.TimeOfDay
	LastSlot   calendar.TimeOfDay
	Interval   int
	LunchStart calendar.TimeOfDay
	LunchEnd   calendar.TimeOfDay
}

var DefaultHours = Hours{
	FirstSlot:  calendar.At(9, 0),
	LastSlot:   calendar.At(16, 30),
	Interval:   30,
	LunchStart: calendar.At(12, 0),
	LunchEnd:   calendar.At(13, 0),
}

// Slots expands the hours into the daily slot catalog.
func (h Hours) Slots() []Slot {
	if h.Interval <= 0 {
		return nil
	}

	hasLunch := h.LunchEnd > h.LunchStart
	var slots []Slot
	for cur := h.FirstSlot; cur <= h.LastSlot; cur += calendar.TimeOfDay(h.Interval) {
		end := cur + calendar.TimeOfDay(h.Interval)
		lunch := hasLunch && cur < h.LunchEnd && end > h.LunchStart
		slots = append(slots, Slot{Time: cur, Available: !lunch})
	}
	return slots
}

func DefaultSlots() []Slot {
	return DefaultHours.Slots()
}
