package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/ledger"
)

// SeatStats tracks results for one seat position
type SeatStats struct {
	Hands   int
	SumNet  float64
	SumNet2 float64
}

// Statistics accumulates settled rounds. Net results are in chips per round.
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // sum of squares for variance
	Values  []float64 // every round's net, for median and percentiles

	Hands        int
	Wins         int
	Losses       int
	Pushes       int
	Blackjacks   int
	Doubles      int
	Splits       int
	Surrenders   int
	Insured      int
	InsuranceWon int
	DealerBusts  int
	Wagered      int

	Seats map[int]*SeatStats
}

// Add incorporates a settled round
func (s *Statistics) Add(r game.RoundResult) {
	net := 0
	for _, h := range r.Hands {
		hn := ledger.Payout(h)
		net += hn

		s.Hands++
		s.Wagered += h.Bet + h.InsuranceStake
		switch h.Outcome {
		case game.PlayerWin:
			s.Wins++
		case game.DealerWin:
			s.Losses++
		case game.Push:
			s.Pushes++
		}
		if h.Blackjack {
			s.Blackjacks++
		}
		if h.Doubled {
			s.Doubles++
		}
		if h.Split && h.Hand == 0 {
			s.Splits++
		}
		if h.Surrendered {
			s.Surrenders++
		}
		if h.InsuranceStake > 0 {
			s.Insured++
			if h.InsuranceWon {
				s.InsuranceWon++
			}
		}

		if s.Seats == nil {
			s.Seats = make(map[int]*SeatStats)
		}
		ss := s.Seats[h.Seat]
		if ss == nil {
			ss = &SeatStats{}
			s.Seats[h.Seat] = ss
		}
		ss.Hands++
		ss.SumNet += float64(hn)
		ss.SumNet2 += float64(hn) * float64(hn)
	}
	if r.DealerValue > game.Blackjack {
		s.DealerBusts++
	}

	v := float64(net)
	s.Rounds++
	s.SumNet += v
	s.SumNet2 += v * v
	s.Values = append(s.Values, v)
}

// Merge folds other into s; used to combine parallel simulation workers
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.Doubles += other.Doubles
	s.Splits += other.Splits
	s.Surrenders += other.Surrenders
	s.Insured += other.Insured
	s.InsuranceWon += other.InsuranceWon
	s.DealerBusts += other.DealerBusts
	s.Wagered += other.Wagered
	for seat, o := range other.Seats {
		if s.Seats == nil {
			s.Seats = make(map[int]*SeatStats)
		}
		ss := s.Seats[seat]
		if ss == nil {
			ss = &SeatStats{}
			s.Seats[seat] = ss
		}
		ss.Hands += o.Hands
		ss.SumNet += o.SumNet
		ss.SumNet2 += o.SumNet2
	}
}

// Mean returns the average net per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of the round results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of the round results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median round result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the round result at p, between 0 and 1
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// ReturnRate returns the net result as a share of everything wagered
func (s *Statistics) ReturnRate() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.SumNet / float64(s.Wagered)
}

// SeatMean returns the average net per hand played from seat
func (s *Statistics) SeatMean(seat int) float64 {
	ss := s.Seats[seat]
	if ss == nil || ss.Hands == 0 {
		return 0
	}
	return ss.SumNet / float64(ss.Hands)
}

// Validate checks the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values length (%d) does not match rounds (%d)", len(s.Values), s.Rounds)
	}
	if s.Wins+s.Losses+s.Pushes != s.Hands {
		return fmt.Errorf("outcomes (%d) do not add up to hands (%d)", s.Wins+s.Losses+s.Pushes, s.Hands)
	}
	seatHands := 0
	seatNet := 0.0
	for _, ss := range s.Seats {
		seatHands += ss.Hands
		seatNet += ss.SumNet
	}
	if seatHands != s.Hands {
		return fmt.Errorf("seat hands (%d) do not match hands (%d)", seatHands, s.Hands)
	}
	if math.Abs(seatNet-s.SumNet) > 1e-6 {
		return fmt.Errorf("seat net %.2f does not match total net %.2f", seatNet, s.SumNet)
	}
	return nil
}
