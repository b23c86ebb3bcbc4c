package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestNullableConversions(t *testing.T) {
	assert.Nil(t, textToPtr(pgtype.Text{}))
	assert.Equal(t, "Goblin cave", *textToPtr(pgtype.Text{String: "Goblin cave", Valid: true}))
	assert.False(t, ptrToText(nil).Valid)

	empty := ""
	assert.Equal(t, pgtype.Text{String: "", Valid: true}, ptrToText(&empty))

	assert.Nil(t, int8ToPtr(pgtype.Int8{}))
	id := int64(42)
	assert.Equal(t, int64(42), *int8ToPtr(ptrToInt8(&id)))
	assert.False(t, ptrToInt8(nil).Valid)

	assert.Nil(t, pgtimetzToPtr(pgtype.Timestamptz{}))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, now.Equal(*pgtimetzToPtr(timeToPgtimetz(now))))
}
