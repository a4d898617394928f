package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewBarba/specli/internal/request"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndGetProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveProfile(ctx, "spec1", request.Profile{Name: "ci", Server: "https://staging.example.com", AuthScheme: "bearerAuth"}))

	got, err := s.GetProfileForSpec(ctx, "spec1", "ci")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://staging.example.com", got.Server)
	assert.Equal(t, "bearerAuth", got.AuthScheme)
}

func TestStore_GetProfile_MissingReturnsNilNoError(t *testing.T) {
	s := openTestStore(t)
	got, err := s.GetProfileForSpec(context.Background(), "spec1", "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveProfileUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveProfile(ctx, "spec1", request.Profile{Name: "", Server: "https://a.example.com"}))
	require.NoError(t, s.SaveProfile(ctx, "spec1", request.Profile{Name: "", Server: "https://b.example.com"}))

	got, err := s.GetProfileForSpec(ctx, "spec1", "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://b.example.com", got.Server)
}

func TestStore_TokenLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	token, err := s.GetToken("spec1", "")
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, s.SaveToken(ctx, "spec1", "", "secret-token"))
	token, err = s.GetToken("spec1", "")
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)

	require.NoError(t, s.DeleteToken(ctx, "spec1", ""))
	token, err = s.GetToken("spec1", "")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestStore_DeleteTokenNeverStoredIsNotAnError(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.DeleteToken(context.Background(), "spec1", "never-existed"))
}

// Exercises the C12 read_profiles() -> (profiles, default_profile?) contract.
func TestStore_ReadProfilesReturnsAllAndDefault(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveProfile(ctx, "spec1", request.Profile{Name: "", Server: "https://default.example.com"}))
	require.NoError(t, s.SaveProfile(ctx, "spec1", request.Profile{Name: "ci", Server: "https://ci.example.com"}))

	profiles, def, err := s.ReadProfilesForSpec(ctx, "spec1")
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.NotNil(t, def)
	assert.Equal(t, "", def.Name)
	assert.Equal(t, "https://default.example.com", def.Server)
}

func TestStore_ReadProfilesNoDefaultWhenNoneSaved(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveProfile(ctx, "spec1", request.Profile{Name: "ci", Server: "https://ci.example.com"}))

	profiles, def, err := s.ReadProfilesForSpec(ctx, "spec1")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Nil(t, def)
}

func TestStore_ReadProfilesScopedBySpecID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveProfile(ctx, "spec1", request.Profile{Name: "", Server: "https://one.example.com"}))
	require.NoError(t, s.SaveProfile(ctx, "spec2", request.Profile{Name: "", Server: "https://two.example.com"}))

	profiles, _, err := s.ReadProfilesForSpec(ctx, "spec1")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "https://one.example.com", profiles[0].Server)
}

func TestStore_ProfileLookupInterfaceIsSatisfied(t *testing.T) {
	s := openTestStore(t)
	var _ request.ProfileLookup = s

	ctx := context.Background()
	require.NoError(t, s.SaveProfile(ctx, "spec1", request.Profile{Name: "", Server: "https://default.example.com"}))
	require.NoError(t, s.SaveToken(ctx, "spec1", "", "tok"))

	profiles, def, err := s.ReadProfiles("spec1")
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
	require.NotNil(t, def)

	token, err := s.GetToken("spec1", "")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}
