package executor

// historyCapacity bounds the statement history kept for postmortem output.
const historyCapacity = 5

// statementHistory is a fixed-capacity ring of the most recently executed
// statements.
type statementHistory struct {
	entries [historyCapacity]string
	next    int
	size    int
}

func (h *statementHistory) Append(sql string) {
	h.entries[h.next] = sql
	h.next = (h.next + 1) % historyCapacity
	if h.size < historyCapacity {
		h.size++
	}
}

func (h *statementHistory) Len() int {
	return h.size
}

// Descending returns the recorded statements newest first.
func (h *statementHistory) Descending() []string {
	out := make([]string, 0, h.size)
	for i := 1; i <= h.size; i++ {
		out = append(out, h.entries[(h.next-i+historyCapacity)%historyCapacity])
	}
	return out
}
