package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuarantineName_DistinctPerCorruption(t *testing.T) {
	first := time.Unix(1700000000, 0)

	assert.Equal(t, "main.corrupt-1700000000", quarantineName("main", first))
	assert.NotEqual(t, quarantineName("main", first), quarantineName("main", first.Add(time.Minute)))
}
