package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAsset_LifecycleGating(t *testing.T) {
	tests := []struct {
		status      Status
		canCheckOut bool
		canCheckIn  bool
	}{
		{StatusAvailable, true, false},
		{StatusCheckedOut, false, true},
		{StatusMaintenance, false, false},
		{StatusRetired, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Asset{Status: tt.status}
			require.Equal(t, tt.canCheckOut, a.CanCheckOut())
			require.Equal(t, tt.canCheckIn, a.CanCheckIn())
		})
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		require.True(t, c.Valid(), c)
	}
	require.False(t, Category("printer").Valid())
	require.False(t, Category("").Valid())
}

func TestStatus_Valid(t *testing.T) {
	require.True(t, StatusAvailable.Valid())
	require.True(t, StatusCheckedOut.Valid())
	require.False(t, Status("lost").Valid())
}

func TestAsset_UnmarshalAssignee(t *testing.T) {
	payload := `{
		"id": 7,
		"asset_tag": "AST-1A2B3C4D",
		"name": "MacBook Pro 14",
		"category": "laptop",
		"status": "checked_out",
		"manufacturer": "Apple",
		"assignee": {"full_name": "Dana Smith", "department": "Engineering"}
	}`

	var a Asset
	require.NoError(t, json.Unmarshal([]byte(payload), &a))
	require.Equal(t, int64(7), a.ID)
	require.Equal(t, CategoryLaptop, a.Category)
	require.True(t, a.CanCheckIn())
	require.NotNil(t, a.Assignee)
	require.Equal(t, "Dana Smith", a.Assignee.FullName)
	require.Equal(t, "Engineering", a.Assignee.Department)
	require.Nil(t, a.Location)
}

func TestUser_DisplayName(t *testing.T) {
	full := "Dana Smith"
	u := &User{Username: "dana", FullName: &full}
	require.Equal(t, "Dana Smith", u.DisplayName())

	u = &User{Username: "dana"}
	require.Equal(t, "dana", u.DisplayName())

	empty := ""
	u = &User{Username: "dana", FullName: &empty}
	require.Equal(t, "dana", u.DisplayName())
}
