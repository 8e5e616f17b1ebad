package domain

// Tally counts response tokens for one question, keeping first-seen order
type Tally struct {
	order  []string
	counts map[string]int
	total  int
}

func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add records one occurrence of the response
func (t *Tally) Add(response string) {
	if _, ok := t.counts[response]; !ok {
		t.order = append(t.order, response)
	}
	t.counts[response]++
	t.total++
}

func (t *Tally) Count(response string) int {
	return t.counts[response]
}

// Responses returns distinct responses in the order they were first added
func (t *Tally) Responses() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Total is the number of tokens added, equal to the sum of all counts
func (t *Tally) Total() int {
	return t.total
}

func (t *Tally) Len() int {
	return len(t.order)
}
