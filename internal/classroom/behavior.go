package classroom

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInsufficientCoins is returned when a reward costs more than the
// student's balance.
var ErrInsufficientCoins = errors.New("insufficient coins")

// Level is a gamification rank reached at Min positive points.
type Level struct {
	Name string
	Min  int
}

// Levels is the rank ladder in ascending order.
var Levels = []Level{
	{Name: "مبتدئ", Min: 0},
	{Name: "مغامر", Min: 10},
	{Name: "فارس", Min: 30},
	{Name: "بطل", Min: 60},
	{Name: "أسطورة", Min: 100},
}

// LevelFor returns the highest level whose threshold points reaches.
func LevelFor(points int) Level {
	for i := len(Levels) - 1; i >= 0; i-- {
		if points >= Levels[i].Min {
			return Levels[i]
		}
	}
	return Levels[0]
}

// AddBehavior appends rec, deriving its type from the sign of its points
// when unset.
func AddBehavior(s Student, rec BehaviorRecord) Student {
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if rec.Type == "" {
		rec.Type = BehaviorPositive
		if rec.Points < 0 {
			rec.Type = BehaviorNegative
		}
	}
	out := s.Clone()
	out.Behaviors = append(out.Behaviors, rec)
	return out
}

// RemoveBehavior deletes the behaviour record with id.
func RemoveBehavior(s Student, id string) Student {
	out := s.Clone()
	out.Behaviors = slices.DeleteFunc(out.Behaviors, func(b BehaviorRecord) bool { return b.ID == id })
	return out
}

// Points sums all behaviour points (signed) for sem. An empty semester
// sums every record.
func Points(s Student, sem Semester) int {
	total := 0
	for _, b := range s.Behaviors {
		if sem != "" && b.Semester.Normalize() != sem.Normalize() {
			continue
		}
		total += b.Points
	}
	return total
}

// PositivePoints sums points of positive records across all semesters.
func PositivePoints(s Student) int {
	total := 0
	for _, b := range s.Behaviors {
		if b.Type == BehaviorPositive {
			total += b.Points
		}
	}
	return total
}

// CoinBalance is positive points minus coins already spent, never negative.
func CoinBalance(s Student) int {
	return max(0, PositivePoints(s)-s.SpentCoins)
}

// SpendCoins deducts cost from the student's balance.
func SpendCoins(s Student, cost int) (Student, error) {
	if cost <= 0 {
		return s, fmt.Errorf("invalid cost %d", cost)
	}
	if balance := CoinBalance(s); balance < cost {
		return s, fmt.Errorf("%w: balance %d, cost %d", ErrInsufficientCoins, balance, cost)
	}
	out := s.Clone()
	out.SpentCoins += cost
	return out, nil
}

// AwardGroup records the same behaviour for every member of groupID.
func AwardGroup(students []Student, groupID string, points int, reason, date string, sem Semester) []Student {
	out := make([]Student, len(students))
	for i, s := range students {
		if groupID == "" || s.GroupID != groupID {
			out[i] = s.Clone()
			continue
		}
		out[i] = AddBehavior(s, BehaviorRecord{
			Date:        date,
			Description: reason,
			Points:      points,
			Semester:    sem,
		})
	}
	return out
}

// GroupScores sums the signed points of each group's members.
func GroupScores(students []Student, groups []Group) map[string]int {
	scores := make(map[string]int, len(groups))
	for _, g := range groups {
		scores[g.ID] = 0
	}
	for _, s := range students {
		if _, ok := scores[s.GroupID]; !ok {
			continue
		}
		scores[s.GroupID] += Points(s, "")
	}
	return scores
}
