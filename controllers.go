package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// API binds the HTTP surface to the marketplace operations.
type API struct {
	market *Marketplace
	tokens *TokenIssuer
	files  FileStorage
	log    *zap.SugaredLogger
}

func NewAPI(market *Marketplace, tokens *TokenIssuer, files FileStorage, log *zap.SugaredLogger) *API {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &API{market: market, tokens: tokens, files: files, log: log}
}

// -----------------------------
// Helper functions
// -----------------------------

func jsonError(c *gin.Context, code int, kind ErrorKind, msg string) {
	c.JSON(code, gin.H{"error": msg, "code": kind})
}

// respondError renders err with the status of its kind. Storage details are
// kept out of the response body.
func respondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{Kind: KindStorage, Message: "internal server error", Err: err}
	}
	if appErr.Kind == KindStorage {
		_ = c.Error(err)
	}
	jsonError(c, appErr.Kind.HTTPStatus(), appErr.Kind, appErr.Message)
}

func abortWithError(c *gin.Context, err error) {
	respondError(c, err)
	c.Abort()
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		jsonError(c, http.StatusBadRequest, KindValidation, "invalid request: "+err.Error())
		return false
	}
	return true
}

// mustCaller is only used behind AuthMiddleware.
func mustCaller(c *gin.Context) (Caller, bool) {
	caller, ok := callerFromContext(c)
	if !ok {
		jsonError(c, http.StatusUnauthorized, KindUnauthorized, "unauthorized")
	}
	return caller, ok
}

// queryAny returns the first non-empty query value among keys.
func queryAny(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}

// -----------------------------
// Health
// -----------------------------

func (a *API) Health(c *gin.Context) {
	status, code := "ok", http.StatusOK
	if err := a.market.Ping(c.Request.Context()); err != nil {
		a.log.Warnw("health check failed", "error", err)
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"message":   "Events marketplace API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

// -----------------------------
// Profile
// -----------------------------

func (a *API) GetProfile(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	user, err := a.market.Profile(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) UpdateProfile(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body ProfileUpdate
	if !bindJSON(c, &body) {
		return
	}
	user, err := a.market.UpdateProfile(c.Request.Context(), caller, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) DeactivateProfile(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	if err := a.market.Deactivate(c.Request.Context(), caller); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated"})
}

// -----------------------------
// Vendors
// -----------------------------

func (a *API) ListVendors(c *gin.Context) {
	var f VendorFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		jsonError(c, http.StatusBadRequest, KindValidation, "invalid query: "+err.Error())
		return
	}
	vendors, err := a.market.ListVendors(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

func (a *API) GetVendor(c *gin.Context) {
	vendor, err := a.market.Vendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// -----------------------------
// Events
// -----------------------------

func (a *API) CreateEvent(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body EventInput
	if !bindJSON(c, &body) {
		return
	}
	ev, err := a.market.CreateEvent(c.Request.Context(), caller, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (a *API) ListEvents(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	events, err := a.market.ListEvents(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (a *API) GetEvent(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	ev, err := a.market.Event(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (a *API) UpdateEvent(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body EventUpdate
	if !bindJSON(c, &body) {
		return
	}
	ev, err := a.market.UpdateEvent(c.Request.Context(), caller, c.Param("id"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (a *API) AddEventNote(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body NoteInput
	if !bindJSON(c, &body) {
		return
	}
	note, err := a.market.AddEventNote(c.Request.Context(), caller, c.Param("id"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (a *API) AddEventAttachment(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body AttachmentInput
	if !bindJSON(c, &body) {
		return
	}
	att, err := a.market.AddEventAttachment(c.Request.Context(), caller, c.Param("id"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, att)
}

// -----------------------------
// Vendor requests
// -----------------------------

func (a *API) CreateVendorRequest(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body VendorRequestInput
	if !bindJSON(c, &body) {
		return
	}
	vr, err := a.market.CreateVendorRequest(c.Request.Context(), caller, c.Param("id"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vr)
}

func (a *API) UpdateVendorRequest(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body VendorRequestUpdate
	if !bindJSON(c, &body) {
		return
	}
	vr, err := a.market.UpdateVendorRequest(c.Request.Context(), caller, c.Param("id"), c.Param("requestId"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vr)
}

// -----------------------------
// Messages
// -----------------------------

func (a *API) SendMessage(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body MessageInput
	if !bindJSON(c, &body) {
		return
	}
	msg, err := a.market.SendMessage(c.Request.Context(), caller, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (a *API) ListMessages(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	msgs, err := a.market.ListMessages(c.Request.Context(), caller,
		queryAny(c, "event_id", "eventId"),
		queryAny(c, "recipient_id", "recipientId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (a *API) MarkMessageRead(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	msg, err := a.market.MarkMessageRead(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (a *API) Conversations(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	rows, err := a.market.Conversations(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// -----------------------------
// Venues & reviews
// -----------------------------

func (a *API) ListVenues(c *gin.Context) {
	var f VenueFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		jsonError(c, http.StatusBadRequest, KindValidation, "invalid query: "+err.Error())
		return
	}
	venues, err := a.market.ListVenues(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venues)
}

func (a *API) CreateVenue(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body VenueInput
	if !bindJSON(c, &body) {
		return
	}
	venue, err := a.market.CreateVenue(c.Request.Context(), caller, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venue)
}

func (a *API) CreateReview(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	var body ReviewInput
	if !bindJSON(c, &body) {
		return
	}
	review, err := a.market.CreateReview(c.Request.Context(), caller, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (a *API) ListReviews(c *gin.Context) {
	reviews, err := a.market.ListReviews(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// -----------------------------
// Uploads
// -----------------------------

func (a *API) Upload(c *gin.Context) {
	if _, ok := mustCaller(c); !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		jsonError(c, http.StatusBadRequest, KindValidation, "no file uploaded")
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, storageFailure("upload failed", err))
		return
	}
	defer f.Close()

	stored, err := a.files.Save(c.Request.Context(), fh.Filename, f)
	if err != nil {
		respondError(c, storageFailure("upload failed", err))
		return
	}
	c.JSON(http.StatusOK, stored)
}

// -----------------------------
// Computed views
// -----------------------------

func (a *API) BudgetRecommendations(c *gin.Context) {
	if _, ok := mustCaller(c); !ok {
		return
	}
	rawBudget := queryAny(c, "total_budget", "totalBudget")
	if rawBudget == "" {
		jsonError(c, http.StatusBadRequest, KindValidation, "total_budget is required")
		return
	}
	budget, err := strconv.ParseFloat(rawBudget, 64)
	if err != nil {
		jsonError(c, http.StatusBadRequest, KindValidation, "total_budget must be a number")
		return
	}
	attendees := 0
	if raw := c.Query("attendees"); raw != "" {
		if attendees, err = strconv.Atoi(raw); err != nil {
			jsonError(c, http.StatusBadRequest, KindValidation, "attendees must be an integer")
			return
		}
	}

	rec, err := RecommendBudget(c.Param("eventType"), attendees, budget)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (a *API) Dashboard(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	stats, err := a.market.Dashboard(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *API) Notifications(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	feed, err := a.market.Notifications(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// SearchHandler runs behind OptionalAuth; events are only included for a
// signed-in organizer.
func (a *API) SearchHandler(c *gin.Context) {
	var req SearchQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		jsonError(c, http.StatusBadRequest, KindValidation, "invalid query: "+err.Error())
		return
	}
	var caller *Caller
	if cl, ok := callerFromContext(c); ok {
		caller = &cl
	}
	results, err := a.market.Search(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
