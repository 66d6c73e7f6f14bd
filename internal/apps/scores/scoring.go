package scores

import "math"

// CompletionRate is the percentage of completed items, rounded to the
// nearest whole number. Zero items score zero, not NaN.
func CompletionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// DietAdherence weights partially followed meals at half credit. Two
// followed, one partial and one skipped meal score 63.
func DietAdherence(followed, partial, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * (float64(followed) + 0.5*float64(partial)) / float64(total)))
}

// FocusRatio is focused time as a share of all tracked time.
func FocusRatio(focus, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * focus / total))
}

// Overall averages the four component scores.
func Overall(task, timeScore, diet, schedule int) int {
	return int(math.Round(float64(task+timeScore+diet+schedule) / 4))
}
