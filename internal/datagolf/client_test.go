package datagolf

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_GetLiveStats(t *testing.T) {
	tests := []struct {
		name           string
		serverStatus   int
		serverResponse string
		wantError      bool
		wantGolfers    int
	}{
		{
			name:         "successful request",
			serverStatus: http.StatusOK,
			serverResponse: `{
				"event_name": "The Masters",
				"current_round": 2,
				"live_stats": [
					{"dg_id": 18417, "player_name": "Scheffler, Scottie", "current_pos": "1",
					 "current_score": -9, "today": -4, "thru": 12, "round": 2, "R1": 67},
					{"dg_id": 19195, "player_name": "Aberg, Ludvig", "current_pos": "T2",
					 "current_score": -6, "today": -1, "thru": 14, "round": 2, "R1": 69}
				]
			}`,
			wantGolfers: 2,
		},
		{
			name:           "feed error status",
			serverStatus:   http.StatusServiceUnavailable,
			serverResponse: "feed down",
			wantError:      true,
		},
		{
			name:           "malformed body",
			serverStatus:   http.StatusOK,
			serverResponse: "{not json",
			wantError:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/preds/in-play" {
					t.Errorf("expected path /preds/in-play, got %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("key"); got != "test-key" {
					t.Errorf("expected key=test-key, got %q", got)
				}
				if got := r.URL.Query().Get("tour"); got != "pga" {
					t.Errorf("expected tour=pga, got %q", got)
				}
				w.WriteHeader(tt.serverStatus)
				w.Write([]byte(tt.serverResponse))
			}))
			defer server.Close()

			logger, _ := test.NewNullLogger()
			client := NewHTTPClient(server.URL, "test-key", logger)

			stats, err := client.GetLiveStats(context.Background(), "pga")
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, stats.Golfers, tt.wantGolfers)
			assert.Equal(t, "The Masters", stats.EventName)
			assert.Equal(t, 2, stats.CurrentRound)
			assert.Equal(t, "1", stats.Golfers[0].Position)
			assert.Equal(t, -9.0, stats.Golfers[0].Total)
			require.NotNil(t, stats.Golfers[0].R1)
			assert.Equal(t, 67.0, *stats.Golfers[0].R1)
			assert.Nil(t, stats.Golfers[0].R2)
		})
	}
}

func TestHTTPClient_GetLiveStats_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	client := NewHTTPClient(server.URL, "test-key", logger)

	_, err := client.GetLiveStats(context.Background(), "pga")
	require.Error(t, err)

	// The status code must survive the wrapping so callers can branch on it.
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestHTTPClient_GetSchedule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-schedule" {
			t.Errorf("expected path /get-schedule, got %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"tour": "pga",
			"season": 2026,
			"schedule": [
				{"event_id": 14, "event_name": "The Masters", "course": "Augusta National",
				 "start_date": "2026-04-09", "location": "Augusta, GA"}
			]
		}`))
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	client := NewHTTPClient(server.URL, "test-key", logger)

	schedule, err := client.GetSchedule(context.Background(), "pga")
	require.NoError(t, err)
	require.Len(t, schedule.Schedule, 1)
	assert.Equal(t, 14, schedule.Schedule[0].EventID)
	assert.Equal(t, "Augusta National", schedule.Schedule[0].CourseName)
}

func TestHTTPClient_GetFieldUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/field-updates" {
			t.Errorf("expected path /field-updates, got %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"event_name": "The Masters",
			"current_round": 1,
			"field": [
				{"dg_id": 18417, "player_name": "Scheffler, Scottie", "country": "USA",
				 "r1_teetime": "10:42", "wd": false},
				{"dg_id": 22085, "player_name": "Hovland, Viktor", "country": "NOR",
				 "r1_teetime": null, "wd": true}
			]
		}`))
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	client := NewHTTPClient(server.URL, "test-key", logger)

	update, err := client.GetFieldUpdate(context.Background(), "pga")
	require.NoError(t, err)
	require.Len(t, update.Field, 2)
	assert.False(t, update.Field[0].Withdrew)
	assert.True(t, update.Field[1].Withdrew)
	assert.Nil(t, update.Field[1].TeeTimeR1)
}
