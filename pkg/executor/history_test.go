package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatementHistory_Empty(t *testing.T) {
	var h statementHistory

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Descending())
}

func TestStatementHistory_Descending(t *testing.T) {
	var h statementHistory
	h.Append("first")
	h.Append("second")
	h.Append("third")

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []string{"third", "second", "first"}, h.Descending())
}

func TestStatementHistory_CapacityEviction(t *testing.T) {
	var h statementHistory
	for _, sql := range []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7"} {
		h.Append(sql)
	}

	assert.Equal(t, historyCapacity, h.Len())
	assert.Equal(t, []string{"s7", "s6", "s5", "s4", "s3"}, h.Descending(), "oldest statements are evicted first")
}
