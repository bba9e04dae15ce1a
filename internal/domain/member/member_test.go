package member

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	// Level 1 spans [0,100), level 2 spans [100,300), level 3 spans [300,600).
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100))
	assert.Equal(t, 2, LevelForXP(299))
	assert.Equal(t, 3, LevelForXP(300))
	assert.Equal(t, 4, LevelForXP(600))
}

func TestValidateUserID(t *testing.T) {
	assert.NoError(t, ValidateUserID("100000000000000001"))
	assert.Error(t, ValidateUserID(""))
	assert.Error(t, ValidateUserID("not-a-snowflake"))
	assert.Error(t, ValidateUserID("123"))
}

func TestValidateStatus(t *testing.T) {
	assert.NoError(t, ValidateStatus(StatusActive))
	assert.NoError(t, ValidateStatus(StatusBanned))
	assert.Error(t, ValidateStatus(Status("UNKNOWN")))
}
