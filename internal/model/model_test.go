package model

import (
	"encoding/json"
	"testing"

	"github.com/deppfellow/booking-api/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPropertiesQuery_Validate(t *testing.T) {
	t.Run("empty price means no bound", func(t *testing.T) {
		q := &GetPropertiesQuery{Location: "Porto", PricePerNight: "  "}
		require.NoError(t, q.Validate())
		assert.Nil(t, q.MaxPrice)
	})

	t.Run("numeric price", func(t *testing.T) {
		q := &GetPropertiesQuery{PricePerNight: "99.90"}
		require.NoError(t, q.Validate())
		require.NotNil(t, q.MaxPrice)
		assert.True(t, decimal.RequireFromString("99.9").Equal(*q.MaxPrice))
	})

	t.Run("non-numeric price", func(t *testing.T) {
		q := &GetPropertiesQuery{PricePerNight: "cheap"}

		var custom validation.CustomValidationErrors
		require.ErrorAs(t, q.Validate(), &custom)
		assert.Equal(t, "pricePerNight", custom[0].Field)
	})
}

func TestCreatePropertyPayload_AcceptsNumbersAndStrings(t *testing.T) {
	hostID := uuid.New()

	var p CreatePropertyPayload
	require.NoError(t, json.Unmarshal([]byte(`{
		"hostId": "`+hostID.String()+`",
		"title": "Loft",
		"location": "Porto",
		"pricePerNight": "120.50",
		"rating": 4.5
	}`), &p))
	require.NoError(t, p.Validate())

	property := p.ToProperty()
	assert.Equal(t, hostID, property.HostID)
	assert.Equal(t, "120.5", property.PricePerNight.String())
	assert.Equal(t, 4.5, property.Rating)
}

func TestCreatePropertyPayload_Validate(t *testing.T) {
	base := func() *CreatePropertyPayload {
		return &CreatePropertyPayload{
			HostID:        uuid.NewString(),
			Title:         "Loft",
			Location:      "Porto",
			PricePerNight: NewNumber(decimal.NewFromInt(50)),
		}
	}

	t.Run("rating defaults to zero", func(t *testing.T) {
		p := base()
		require.NoError(t, p.Validate())
		assert.Zero(t, p.ToProperty().Rating)
	})

	t.Run("missing price", func(t *testing.T) {
		p := base()
		p.PricePerNight = Number{}

		var custom validation.CustomValidationErrors
		require.ErrorAs(t, p.Validate(), &custom)
		assert.Equal(t, validation.CustomValidationErrors{
			{Field: "pricePerNight", Message: "is required"},
		}, custom)
	})

	t.Run("negative price and rating above five", func(t *testing.T) {
		p := base()
		p.PricePerNight = NewNumber(decimal.NewFromInt(-1))
		p.Rating = NewNumber(decimal.RequireFromString("5.5"))

		var custom validation.CustomValidationErrors
		require.ErrorAs(t, p.Validate(), &custom)
		assert.Len(t, custom, 2)
	})
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		set     bool
		invalid bool
	}{
		{raw: `12.5`, want: "12.5", set: true},
		{raw: `"12.50"`, want: "12.5", set: true},
		{raw: `" 7 "`, want: "7", set: true},
		{raw: `null`},
		{raw: `""`},
		{raw: `"abc"`, set: true, invalid: true},
		{raw: `true`, set: true, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &n))
			assert.Equal(t, tt.set, n.Set)
			assert.Equal(t, tt.invalid, n.Invalid)
			if tt.want != "" {
				assert.Equal(t, tt.want, n.Value.String())
			}
		})
	}
}

func TestPropertyPayloads_NonNumericInput(t *testing.T) {
	t.Run("empty rating is no rating", func(t *testing.T) {
		var p CreatePropertyPayload
		require.NoError(t, json.Unmarshal([]byte(`{
			"hostId": "`+uuid.NewString()+`",
			"title": "Loft",
			"location": "Porto",
			"pricePerNight": 80,
			"rating": ""
		}`), &p))
		require.NoError(t, p.Validate())
		assert.Zero(t, p.ToProperty().Rating)
	})

	t.Run("text price is a field error", func(t *testing.T) {
		var p UpdatePropertyPayload
		require.NoError(t, json.Unmarshal([]byte(`{"pricePerNight": "abc", "rating": "x"}`), &p))
		p.ID = uuid.NewString()

		var custom validation.CustomValidationErrors
		require.ErrorAs(t, p.Validate(), &custom)
		assert.Equal(t, validation.CustomValidationErrors{
			{Field: "pricePerNight", Message: "must be a number"},
			{Field: "rating", Message: "must be a number"},
		}, custom)
	})

	t.Run("empty update price leaves it untouched", func(t *testing.T) {
		var p UpdatePropertyPayload
		require.NoError(t, json.Unmarshal([]byte(`{"pricePerNight": ""}`), &p))
		p.ID = uuid.NewString()
		require.NoError(t, p.Validate())
		assert.Empty(t, p.Changes())
	})
}

func TestUpdatePayloadChanges(t *testing.T) {
	name := "Ana"
	password := "new-secret-pass"
	host := UpdateHostPayload{Name: &name, Password: &password}
	assert.Equal(t, map[string]any{"name": "Ana"}, host.Changes())

	price := decimal.NewFromInt(80)
	bedrooms := 0
	property := UpdatePropertyPayload{
		PricePerNight: NewNumber(price),
		Rating:        NewNumber(decimal.RequireFromString("4.2")),
		BedroomCount:  &bedrooms,
	}
	assert.Equal(t, map[string]any{
		"price_per_night": price,
		"rating":          4.2,
		"bedroom_count":   0,
	}, property.Changes())

	assert.Empty(t, (&UpdatePropertyPayload{}).Changes())
}

func TestPropertyJSON(t *testing.T) {
	p := Property{PricePerNight: decimal.RequireFromString("120.50")}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 120.5, out["pricePerNight"])
	assert.NotContains(t, out, "reviews")
	assert.NotContains(t, out, "bookings")

	p.Reviews = []Review{}
	p.Bookings = []Booking{}
	raw, err = json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"reviews":[]`)
	assert.Contains(t, string(raw), `"bookings":[]`)
	assert.Contains(t, string(raw), `"pricePerNight":120.5`)
}

func TestHostJSONOmitsPassword(t *testing.T) {
	raw, err := json.Marshal(Host{Username: "ana", Password: "$2a$hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$hash")
	assert.NotContains(t, string(raw), "listings")

	raw, err = json.Marshal(&Host{Username: "ana", Listings: []Property{{Title: "Loft"}}})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"username":"ana"`)
	assert.Contains(t, string(raw), `"title":"Loft"`)
	assert.NotContains(t, string(raw), "reviews", "listings are loaded without their own relations")

	raw, err = json.Marshal(Host{Listings: []Property{}})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"listings":[]`)
}
