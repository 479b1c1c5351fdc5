package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/kylianebat7/gudlft/internal/booking"
	"github.com/kylianebat7/gudlft/internal/club"
	"github.com/kylianebat7/gudlft/internal/pubsub"
	"github.com/slack-go/slack"
)

const invalidEmailMessage = "Invalid email, please try again."

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// LoginHandler resolves the club owning the submitted email and returns its summary.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := readValues(r)
		if err != nil {
			log.Warn("Failed to read login request", "error", err)
			writeError(w, http.StatusBadRequest, "malformed_request", "Could not read the request body.")
			return
		}
		email := values["email"]
		c, ok := s.Store.FindClubByEmail(email)
		if !ok {
			log.Info("Login with unknown email", "email", email)
			writeError(w, http.StatusUnauthorized, "invalid_email", invalidEmailMessage)
			return
		}
		log.Info("Club logged in", "club", c.Name)
		writeJSON(w, http.StatusOK, s.summary(c))
	}
}

func (s *Server) ListCompetitionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.refreshCompetitions()
		writeJSON(w, http.StatusOK, s.Store.ListCompetitions(s.Booking.Now()))
	}
}

// PointsBoardHandler is the public list of clubs and their balances. It needs no login.
func (s *Server) PointsBoardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Store.ListClubs())
	}
}

func (s *Server) ClubSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := s.Store.FindClubByEmail(r.PathValue("email"))
		if !ok {
			writeError(w, http.StatusNotFound, string(booking.ReasonUnknownEntity), invalidEmailMessage)
			return
		}
		writeJSON(w, http.StatusOK, s.summary(c))
	}
}

func (s *Server) ClubPointsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := s.Store.FindClubByEmail(r.PathValue("email"))
		if !ok {
			writeError(w, http.StatusNotFound, string(booking.ReasonUnknownEntity), invalidEmailMessage)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"club": c.Name, "points": c.Points})
	}
}

// BookingFormHandler checks that the club may open the booking page of the competition
// and reports how many places it could book at most.
func (s *Server) BookingFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.refreshCompetitions()
		c, competition, err := s.Booking.CheckBookable(r.PathValue("club"), r.PathValue("competition"))
		if err != nil {
			log.Info("Booking page refused", "club", r.PathValue("club"), "competition", r.PathValue("competition"), "reason", booking.ReasonOf(err))
			writeBookingError(w, err)
			return
		}

		maxPlaces := min(int(c.Points), int(competition.NumberOfPlaces))
		if limit := s.Cfg.MaxPlacesPerBooking; limit > 0 {
			maxPlaces = min(maxPlaces, limit)
		}
		writeJSON(w, http.StatusOK, bookingForm{
			Club:        c,
			Competition: club.CompetitionView{Competition: competition, IsPast: false},
			MaxPlaces:   maxPlaces,
		})
	}
}

// BookPlacesHandler takes club, competition and places from a form or JSON body.
// With dry_run=true the booking is only validated.
func (s *Server) BookPlacesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := readValues(r)
		if err != nil {
			log.Warn("Failed to read booking request", "error", err)
			writeError(w, http.StatusBadRequest, string(booking.ReasonMalformedInput), "Could not read the request body.")
			return
		}

		result, err := s.Booking.Book(r.Context(), booking.Request{
			ClubName:        values["club"],
			CompetitionName: values["competition"],
			Places:          values["places"],
			DryRun:          isDryRunFromContext(r),
		})
		if err != nil {
			writeBookingError(w, err)
			return
		}

		status := http.StatusCreated
		if result.DryRun {
			status = http.StatusOK
		}
		writeJSON(w, status, result)
	}
}

func (s *Server) ListBookingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubName := r.URL.Query().Get("club")
		if clubName == "" {
			writeError(w, http.StatusBadRequest, string(booking.ReasonMalformedInput), "The club query parameter is required.")
			return
		}
		if _, ok := s.Store.FindClubByName(clubName); !ok {
			writeError(w, http.StatusNotFound, string(booking.ReasonUnknownEntity), "Something went wrong-please try again")
			return
		}
		writeJSON(w, http.StatusOK, s.Store.BookingsForClub(clubName))
	}
}

// ReloadHandler re-reads every collection file, picking up edits made by hand.
func (s *Server) ReloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have reloaded all collections")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "Reload skipped (dry run).")
			return
		}

		s.Metrics.IncReloads()
		if err := s.Store.Reload(); err != nil {
			s.Metrics.IncStorageFailures()
			log.Error("Failed to reload collections", "error", err)
			writeError(w, http.StatusInternalServerError, string(booking.ReasonStorageFailure), "Could not reload the data files.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{
			"clubs":        len(s.Store.ListClubs()),
			"competitions": len(s.Store.ListCompetitions(s.Booking.Now())),
			"bookings":     len(s.Store.AllBookings()),
		})
	}
}

// NotifyPointsBoardHandler posts the current points board to the notification channel.
// It is meant to be called by a scheduler.
func (s *Server) NotifyPointsBoardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubs := s.Store.ListClubs()
		if err := s.Notifier.SendPointsBoard(r.Context(), clubs, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send points board", "error", err)
			http.Error(w, "Failed to send points board", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// BookingCreatedHandler consumes booking-created events pushed by Pub/Sub and sends
// the booking confirmation. A non-2xx answer makes Pub/Sub redeliver.
func (s *Server) BookingCreatedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received booking created message", "body", string(bodyBytes))

		var envelope pushEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event pubsub.BookingCreatedEvent
		if err := s.PubSub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		b := booking.BookingFromEvent(event)
		if err := s.Notifier.SendBookingConfirmation(r.Context(), b, event.PointsLeft, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send booking confirmation", "error", err, "bookingID", b.ID, "messageID", envelope.Message.ID)
			http.Error(w, "Failed to send booking confirmation", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	writeJSON(w, http.StatusOK, msg)
}

// PointsCommandHandler answers the /points slash command with the points board.
func (s *Server) PointsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			log.Error("Failed to parse slash command", "error", err)
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		log.Info("Received points command", "command", cmd.Command, "user", cmd.UserName)

		msg, err := s.Notifier.FormatPointsBoardResponse(s.Store.ListClubs())
		if err != nil {
			log.Error("Failed to format points board", "error", err)
			http.Error(w, "Failed to format points board", http.StatusInternalServerError)
			return
		}

		switch m := msg.(type) {
		case slack.Message:
			respondWithSlackMsg(w, m)
		default:
			writeJSON(w, http.StatusOK, m)
		}
	}
}

func (s *Server) summary(c club.Club) clubSummary {
	s.refreshCompetitions()
	return clubSummary{
		Club:         c,
		Competitions: s.Store.ListCompetitions(s.Booking.Now()),
		Bookings:     s.Store.BookingsForClub(c.Name),
	}
}

// refreshCompetitions picks up competitions added to the file since startup.
// A failed read keeps the cached list.
func (s *Server) refreshCompetitions() {
	if !s.Cfg.RefreshCompetitions {
		return
	}
	if err := s.Store.ReloadCompetitions(); err != nil {
		s.Metrics.IncStorageFailures()
		log.Warn("Failed to refresh competitions, serving cached list", "error", err)
	}
}
