package domain

// RatingProfile carries the user's 0..10 self-ratings for the concept. The
// endpoints 0 and 10 are valid values, not sentinels.
type RatingProfile struct {
	Fun     int `json:"fun"`
	Novelty int `json:"novelty"`
	Visual  int `json:"visual"`
}

func (r RatingProfile) Sum() int {
	return r.Fun + r.Novelty + r.Visual
}

// InRange reports whether all three axes sit inside [0,10].
func (r RatingProfile) InRange() bool {
	for _, v := range []int{r.Fun, r.Novelty, r.Visual} {
		if v < 0 || v > 10 {
			return false
		}
	}
	return true
}
