package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"partyconnect/internal/adapters/http/api"
	"partyconnect/internal/adapters/storage"
	"partyconnect/internal/app"
	"partyconnect/internal/domain/auth"
	"partyconnect/internal/domain/geo"
	"partyconnect/internal/domain/model"
	"partyconnect/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// newTestMux builds a mux backed by a real service on in-memory storage.
func newTestMux(t *testing.T) (*http.ServeMux, *app.Service) {
	t.Helper()
	svc := app.New(
		app.WithStorage(storage.NewMemStore()),
		app.WithAuthenticator(auth.New(auth.WithLatencyRange(0, 0))),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, 500, 10).Register(context.Background(), mux)
	return mux, svc
}

func doJSON(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, _ := newTestMux(t)

		Convey("Then the health endpoint should be accessible", func() {
			w := doJSON(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "ok")
		})

		Convey("And the metrics endpoint should serve Prometheus text", func() {
			w := doJSON(mux, "GET", "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint should be accessible", func() {
			w := doJSON(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "currentUser")
		})
	})
}

func TestServer_Events(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, _ := newTestMux(t)

		Convey("When listing events on a fresh install", func() {
			w := doJSON(mux, "GET", "/events", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
		})

		Convey("When creating an event", func() {
			body := `{
				"title": "Beach Party",
				"location": "Malibu Beach, CA",
				"category": "party",
				"date": "2026-09-12T20:00:00Z",
				"coordinates": [34.0259, -118.7798],
				"requirements": [{"id": "req-1", "type": "equipment", "description": "Speakers"}]
			}`
			w := doJSON(mux, "POST", "/events", body)

			Convey("Then it is created with an id and the creator as participant", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				var created model.Event
				So(json.Unmarshal(w.Body.Bytes(), &created), ShouldBeNil)
				So(created.ID, ShouldNotBeEmpty)
				So(created.Creator.ID, ShouldEqual, "current-user")
				So(created.Participants, ShouldResemble, []string{"current-user"})

				Convey("And it can be fetched by id", func() {
					w := doJSON(mux, "GET", "/events/"+created.ID, "")
					So(w.Code, ShouldEqual, http.StatusOK)
				})

				Convey("And it shows up in filtered listings", func() {
					w := doJSON(mux, "GET", "/events?location=malibu", "")
					So(w.Code, ShouldEqual, http.StatusOK)
					So(w.Body.String(), ShouldContainSubstring, "Beach Party")

					w = doJSON(mux, "GET", "/events?category=PARTY", "")
					So(w.Body.String(), ShouldContainSubstring, "Beach Party")

					w = doJSON(mux, "GET", "/events?category=quiz", "")
					So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
				})
			})
		})

		Convey("When creating an event without a title", func() {
			w := doJSON(mux, "POST", "/events", `{"location": "Somewhere"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When creating an event with a malformed date", func() {
			w := doJSON(mux, "POST", "/events", `{"title": "X", "location": "Y", "date": "tomorrow"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When fetching an unknown event", func() {
			w := doJSON(mux, "GET", "/events/nope", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, "not_found")
		})
	})
}

func TestServer_EventActions(t *testing.T) {
	Convey("Given a server with one event", t, func() {
		mux, svc := newTestMux(t)
		ctx := context.Background()

		created, err := svc.CreateEvent(ctx, model.Event{
			Title:    "House Warming",
			Location: "Austin, TX",
			Creator:  model.UserRef{ID: "host-1", Name: "Host"},
			Requirements: []model.Requirement{
				{ID: "req-1", Type: "equipment", Description: "Speakers"},
			},
		})
		So(err, ShouldBeNil)

		Convey("When joining the event", func() {
			w := doJSON(mux, "POST", "/events/"+created.ID+"/join", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			ev, _ := svc.Event(ctx, created.ID)
			So(ev.Participants, ShouldContain, "current-user")
		})

		Convey("When joining an unknown event", func() {
			w := doJSON(mux, "POST", "/events/nope/join", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When contributing against a requirement", func() {
			body := `{"type": "equipment", "details": "Speakers", "requirementId": "req-1"}`
			w := doJSON(mux, "POST", "/events/"+created.ID+"/contribute", body)

			So(w.Code, ShouldEqual, http.StatusCreated)
			var c model.Contribution
			So(json.Unmarshal(w.Body.Bytes(), &c), ShouldBeNil)
			So(c.UserID, ShouldEqual, "current-user")

			ev, _ := svc.Event(ctx, created.ID)
			So(ev.Requirements[0].Filled, ShouldBeTrue)
		})

		Convey("When contributing without a type", func() {
			w := doJSON(mux, "POST", "/events/"+created.ID+"/contribute", `{"details": "x"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When rating a contributor", func() {
			_, err := svc.Contribute(ctx, created.ID, model.Contribution{Details: "Microphone"})
			So(err, ShouldBeNil)

			body := `{"participantId": "current-user", "rating": 9}`
			w := doJSON(mux, "POST", "/events/"+created.ID+"/rate", body)
			So(w.Code, ShouldEqual, http.StatusOK)

			Convey("Then the stored rating is clamped to the scale", func() {
				ev, _ := svc.Event(ctx, created.ID)
				So(ev.Contributors[0].Rating, ShouldNotBeNil)
				So(*ev.Contributors[0].Rating, ShouldEqual, 5)
			})
		})

		Convey("When hitting an unknown action", func() {
			w := doJSON(mux, "POST", "/events/"+created.ID+"/promote", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestServer_Nearby(t *testing.T) {
	Convey("Given events in LA and New York", t, func() {
		mux, svc := newTestMux(t)
		ctx := context.Background()

		_, err := svc.CreateEvent(ctx, model.Event{
			Title:       "Downtown LA Party",
			Location:    "Los Angeles, CA",
			Coordinates: &geo.Coordinates{Lat: 34.05, Lon: -118.24},
		})
		So(err, ShouldBeNil)
		_, err = svc.CreateEvent(ctx, model.Event{
			Title:       "NY Rooftop",
			Location:    "New York, NY",
			Coordinates: &geo.Coordinates{Lat: 40.7128, Lon: -74.006},
		})
		So(err, ShouldBeNil)

		Convey("When querying nearby with the profile origin", func() {
			w := doJSON(mux, "GET", "/events/nearby?max_km=50", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Downtown LA Party")
			So(w.Body.String(), ShouldNotContainSubstring, "NY Rooftop")
		})

		Convey("When querying nearby with an explicit origin", func() {
			w := doJSON(mux, "GET", "/events/nearby?lat=40.7&lon=-74&max_km=50", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "NY Rooftop")
		})

		Convey("When the radius exceeds the cap", func() {
			w := doJSON(mux, "GET", "/events/nearby?max_km=10000", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "radius_exceeded")
		})

		Convey("When lat/lon are malformed", func() {
			w := doJSON(mux, "GET", "/events/nearby?lat=abc&lon=1", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When lat/lon are out of range", func() {
			w := doJSON(mux, "GET", "/events/nearby?lat=95&lon=10", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestServer_Profile(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, _ := newTestMux(t)

		Convey("When fetching the profile", func() {
			w := doJSON(mux, "GET", "/profile", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "current-user")
		})

		Convey("When patching the profile", func() {
			w := doJSON(mux, "PATCH", "/profile", `{"name": "Jamie", "bio": "New bio"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var p model.Profile
			So(json.Unmarshal(w.Body.Bytes(), &p), ShouldBeNil)
			So(p.Name, ShouldEqual, "Jamie")
			So(p.Bio, ShouldEqual, "New bio")
			So(p.Location, ShouldEqual, "Los Angeles, CA")
		})

		Convey("When patching with an invalid email", func() {
			w := doJSON(mux, "PATCH", "/profile", `{"email": "not-an-email"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When patching with out-of-range coordinates", func() {
			w := doJSON(mux, "PATCH", "/profile", `{"coordinates": [95, 10]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When updating the location with a name", func() {
			w := doJSON(mux, "PUT", "/profile/location", `{"lat": 30.2672, "lon": -97.7431, "name": "Austin, TX"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Austin, TX")
		})

		Convey("When updating the location without a name", func() {
			w := doJSON(mux, "PUT", "/profile/location", `{"lat": 30.2672, "lon": -97.7431}`)

			Convey("Then the reverse geocoder fills it in", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "Austin, TX")
			})
		})
	})
}

func TestServer_Achievements(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, svc := newTestMux(t)
		ctx := context.Background()

		Convey("When listing earned badges on a fresh profile", func() {
			w := doJSON(mux, "GET", "/achievements", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
		})

		Convey("When listing the full catalog", func() {
			w := doJSON(mux, "GET", "/achievements?all=true", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "first-time-sponsor")
			So(w.Body.String(), ShouldContainSubstring, "event-master")
		})

		Convey("When the user sponsors an event", func() {
			created, err := svc.CreateEvent(ctx, model.Event{
				Title:   "Fundraiser",
				Creator: model.UserRef{ID: "host-1", Name: "Host"},
			})
			So(err, ShouldBeNil)
			_, err = svc.Contribute(ctx, created.ID, model.Contribution{Type: "sponsor"})
			So(err, ShouldBeNil)

			w := doJSON(mux, "GET", "/achievements", "")
			So(w.Body.String(), ShouldContainSubstring, "first-time-sponsor")
		})
	})
}

func TestServer_Auth(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, svc := newTestMux(t)

		Convey("When logging in with a known provider", func() {
			w := doJSON(mux, "POST", "/auth/login", `{"provider": "google"}`)
			So(w.Code, ShouldEqual, http.StatusOK)

			var session auth.Session
			So(json.Unmarshal(w.Body.Bytes(), &session), ShouldBeNil)
			So(session.Identity.ID, ShouldEqual, "google-user-123")
			So(session.Token, ShouldNotBeEmpty)

			p, _ := svc.Profile(context.Background())
			So(p.Name, ShouldEqual, "Alex Johnson")
		})

		Convey("When logging in with an unknown provider", func() {
			w := doJSON(mux, "POST", "/auth/login", `{"provider": "myspace"}`)
			So(w.Code, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("When logging in with neither provider nor credentials", func() {
			w := doJSON(mux, "POST", "/auth/login", `{}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When signing up with email", func() {
			body := `{"email": "jamie.lee@example.com", "password": "hunter22"}`
			w := doJSON(mux, "POST", "/auth/signup", body)
			So(w.Code, ShouldEqual, http.StatusCreated)

			var session auth.Session
			So(json.Unmarshal(w.Body.Bytes(), &session), ShouldBeNil)
			So(session.Identity.Name, ShouldEqual, "Jamie Lee")

			Convey("And logging back in works", func() {
				w := doJSON(mux, "POST", "/auth/login", body)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And a duplicate signup conflicts", func() {
				w := doJSON(mux, "POST", "/auth/signup", body)
				So(w.Code, ShouldEqual, http.StatusConflict)
			})

			Convey("And a wrong password is rejected", func() {
				w := doJSON(mux, "POST", "/auth/login", `{"email": "jamie.lee@example.com", "password": "nope"}`)
				So(w.Code, ShouldEqual, http.StatusUnauthorized)
			})
		})

		Convey("When signing up with a short password", func() {
			w := doJSON(mux, "POST", "/auth/signup", `{"email": "a@b.co", "password": "abc"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestServer_Geocode(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, _ := newTestMux(t)

		Convey("When geocoding a known city", func() {
			w := doJSON(mux, "GET", "/geocode?q=austin", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "30.2672")
		})

		Convey("When geocoding an unknown place", func() {
			w := doJSON(mux, "GET", "/geocode?q=atlantis", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the query is missing", func() {
			w := doJSON(mux, "GET", "/geocode", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When reverse geocoding near a known city", func() {
			w := doJSON(mux, "GET", "/geocode/reverse?lat=34.05&lon=-118.24", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Los Angeles")
		})

		Convey("When reverse geocoding the open ocean", func() {
			w := doJSON(mux, "GET", "/geocode/reverse?lat=0&lon=-140", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Unknown location")
		})
	})
}
