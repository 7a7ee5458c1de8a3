package rate

import (
	"math"
	"slices"
	"strconv"
	"time"

	"courierhub/internal/domain/entity"
	domainerrors "courierhub/internal/domain/errors"
)

// Recommendation reasons.
const (
	ReasonCheapest    = "Lowest shipping cost"
	ReasonFastest     = "Fastest delivery time"
	ReasonRecommended = "Best overall performance"
)

// Request describes the booking being priced.
type Request struct {
	WeightKg    float64            `json:"weight"`
	ServiceType entity.ServiceType `json:"service_type"`
	PaymentMode entity.PaymentMode `json:"payment_mode"`
	FromPincode string             `json:"from_pincode,omitempty"`
	ToPincode   string             `json:"to_pincode,omitempty"`
}

// Normalize fills the default service type and payment mode and validates the request.
func (r Request) Normalize() (Request, error) {
	r.ServiceType = r.ServiceType.OrDefault()
	if r.PaymentMode == "" {
		r.PaymentMode = entity.PaymentPrepaid
	}
	if err := validateWeight(r.WeightKg); err != nil {
		return r, err
	}
	if !r.ServiceType.IsValid() {
		return r, domainerrors.ErrInvalidInput.WithDetails("unknown service type " + strconv.Quote(string(r.ServiceType)))
	}
	if !r.PaymentMode.IsValid() {
		return r, domainerrors.ErrInvalidInput.WithDetails("unknown payment mode " + strconv.Quote(string(r.PaymentMode)))
	}

	return r, nil
}

// Features lists what a quoted courier offers.
type Features struct {
	Domestic      bool `json:"domestic"`
	International bool `json:"international"`
	Tracking      bool `json:"tracking"`
	Insurance     bool `json:"insurance"`
}

// Quote is the price and delivery estimate of one courier for a request.
type Quote struct {
	Courier       entity.CourierRef `json:"courier"`
	Rate          int               `json:"rate"`
	EstimatedDays int               `json:"estimated_days"`
	EstimatedDate time.Time         `json:"estimated_date"`
	SuccessRate   float64           `json:"success_rate"`
	Rating        float64           `json:"rating"`
	Features      Features          `json:"features"`
}

// Pick is a highlighted quote.
type Pick struct {
	Quote
	Reason string `json:"reason"`
}

// Recommendations highlights the notable quotes of a comparison. All are nil when nothing was quoted.
type Recommendations struct {
	Cheapest    *Pick `json:"cheapest"`
	Fastest     *Pick `json:"fastest"`
	Recommended *Pick `json:"recommended"`
}

// Comparison is the result of quoting a request against every active courier.
type Comparison struct {
	Request         Request         `json:"request"`
	Quotes          []Quote         `json:"comparison"`
	Recommendations Recommendations `json:"recommendations"`
}

// QuoteFor prices the request for a single courier.
func QuoteFor(courier *entity.Courier, req Request, now time.Time) (Quote, error) {
	rate, err := CalculateRate(courier, req.WeightKg, req.ServiceType, req.PaymentMode.IsCOD())
	if err != nil {
		return Quote{}, err
	}
	days := EstimateDelivery(courier, req.ServiceType)

	return Quote{
		Courier:       courier.Ref(),
		Rate:          rate,
		EstimatedDays: days,
		EstimatedDate: now.AddDate(0, 0, days),
		SuccessRate:   courier.Performance.DeliverySuccessRate,
		Rating:        courier.Performance.AvgRating,
		Features: Features{
			Domestic:      courier.Coverage.Domestic,
			International: courier.Coverage.International,
			Tracking:      true,
			Insurance:     true,
		},
	}, nil
}

// Compare quotes every courier, sorts the quotes by ascending rate and picks the
// cheapest, fastest and best-rated options.
//
// Fastest and Recommended break ties in favour of the courier that comes first in
// couriers, not in the sorted quotes.
func Compare(req Request, couriers []*entity.Courier, now time.Time) (*Comparison, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	quotes := make([]Quote, 0, len(couriers))
	for _, courier := range couriers {
		q, err := QuoteFor(courier, req, now)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	result := &Comparison{Request: req, Quotes: quotes}
	if len(quotes) == 0 {
		return result, nil
	}

	fastest, best := quotes[0], quotes[0]
	for _, q := range quotes[1:] {
		if q.EstimatedDays < fastest.EstimatedDays {
			fastest = q
		}
		if q.Rating > best.Rating {
			best = q
		}
	}

	sorted := slices.Clone(quotes)
	slices.SortStableFunc(sorted, func(a, b Quote) int {
		return a.Rate - b.Rate
	})
	result.Quotes = sorted
	result.Recommendations = Recommendations{
		Cheapest:    &Pick{Quote: sorted[0], Reason: ReasonCheapest},
		Fastest:     &Pick{Quote: fastest, Reason: ReasonFastest},
		Recommended: &Pick{Quote: best, Reason: ReasonRecommended},
	}

	return result, nil
}

// Priority selects the scoring strategy of Recommend.
type Priority string

const (
	PriorityCost        Priority = "cost"
	PrioritySpeed       Priority = "speed"
	PriorityReliability Priority = "reliability"
	PriorityBalanced    Priority = "balanced"
)

// ParsePriority maps unknown or empty input to balanced.
func ParsePriority(s string) Priority {
	switch p := Priority(s); p {
	case PriorityCost, PrioritySpeed, PriorityReliability, PriorityBalanced:
		return p
	default:
		return PriorityBalanced
	}
}

// ScoredQuote is a quote ranked under a priority. The score is only a ranking signal.
type ScoredQuote struct {
	Quote
	Score float64 `json:"score"`
}

// Recommend scores every courier's prepaid quote under the priority and returns them best first.
func Recommend(req Request, priority Priority, couriers []*entity.Courier, now time.Time) ([]ScoredQuote, error) {
	if req.WeightKg == 0 {
		req.WeightKg = 1
	}
	req.PaymentMode = entity.PaymentPrepaid
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	if len(couriers) == 0 {
		return nil, nil
	}

	scored := make([]ScoredQuote, 0, len(couriers))
	for _, courier := range couriers {
		q, err := QuoteFor(courier, req, now)
		if err != nil {
			return nil, err
		}
		scored = append(scored, ScoredQuote{Quote: q, Score: Score(priority, q)})
	}

	slices.SortStableFunc(scored, func(a, b ScoredQuote) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	return scored, nil
}

// Score rates a quote under the priority, rounded to two decimals.
func Score(priority Priority, q Quote) float64 {
	rate := float64(q.Rate)
	days := float64(q.EstimatedDays)

	var score float64
	switch ParsePriority(string(priority)) {
	case PriorityCost:
		score = (500-rate)/5 + q.SuccessRate*0.3
	case PrioritySpeed:
		score = (10-days)*15 + q.SuccessRate*0.5
	case PriorityReliability:
		score = q.SuccessRate + q.Rating*5
	case PriorityBalanced:
		score = (500-rate)/10 + (10-days)*8 + q.SuccessRate*0.5
	}

	return math.Round(score*100) / 100
}
