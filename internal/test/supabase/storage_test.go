package supabase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ertugcetrefli-afk/3dcloud/internal/supabase"
)

func TestSourcePath(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	path := supabase.SourcePath(userID, projectID, "chair.fbx")

	assert.Equal(t, userID.String()+"/"+projectID.String()+"/chair.fbx", path)
}
