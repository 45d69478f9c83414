package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iqro_backend/internals/constants"
)

func TestKindColumn(t *testing.T) {
	col, err := kindColumn(constants.PointKindHafalan)
	require.NoError(t, err)
	assert.Equal(t, "poin_hafalan", col)

	col, err = kindColumn(constants.PointKindQuiz)
	require.NoError(t, err)
	assert.Equal(t, "poin_quiz", col)

	_, err = kindColumn("bonus")
	assert.Error(t, err)
}

func TestAddPointsIgnoresNonPositive(t *testing.T) {
	// amount <= 0 tidak menyentuh db sama sekali
	assert.NoError(t, AddPoints(nil, uuid.New(), constants.PointKindHafalan, 0, constants.PointSourceSetoran, nil))
	assert.NoError(t, AddPoints(nil, uuid.New(), constants.PointKindQuiz, -5, constants.PointSourceQuiz, nil))
}
