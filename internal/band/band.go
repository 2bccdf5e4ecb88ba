package band

import "math"

// table maps a raw correct-answer count on a full 40-question paper to an
// IELTS band. Counts share bands in groups, e.g. 23–26 correct are all 6.0.
var table = map[int]float64{
	40: 9.0, 39: 9.0,
	38: 8.5, 37: 8.5,
	36: 8.0, 35: 8.0,
	34: 7.5, 33: 7.5,
	32: 7.0, 31: 7.0, 30: 7.0,
	29: 6.5, 28: 6.5, 27: 6.5,
	26: 6.0, 25: 6.0, 24: 6.0, 23: 6.0,
	22: 5.5, 21: 5.5, 20: 5.5, 19: 5.5,
	18: 5.0, 17: 5.0, 16: 5.0, 15: 5.0,
	14: 4.5, 13: 4.5, 12: 4.5,
	11: 4.0, 10: 4.0, 9: 4.0,
	8: 3.5, 7: 3.5, 6: 3.5,
	5: 3.0, 4: 3.0,
	3: 2.5, 2: 2.5,
	1: 2.0, 0: 1.0,
}

// For converts a raw correct count into a band score. Tests with fewer (or
// more) than 40 questions are scaled to the 40-question table before lookup.
// Counts the table does not cover fall back to band 1.0.
func For(correct, total int) float64 {
	if total <= 0 || correct < 0 {
		return 1.0
	}
	if correct > total {
		correct = total
	}

	scaled := correct
	if total != 40 {
		scaled = int(math.Round(float64(correct) * 40 / float64(total)))
	}

	if b, ok := table[scaled]; ok {
		return b
	}
	return 1.0
}
