package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"tablebooker/config"
	catalogRepo "tablebooker/database/repository/catalog"
	"tablebooker/models"
	"tablebooker/services/resdiary"
	"tablebooker/services/tasks"

	"go.uber.org/zap"
)

// customerRequestReason is the cancellation reason id for a user-initiated cancel.
const customerRequestReason = 1

// DispatchResult is the outcome of executing a resolved intent.
type DispatchResult struct {
	Message      string
	Booking      *models.BookingData
	Availability *models.AvailabilityData
}

// Dispatcher executes fully-resolved intents against the booking API. It
// enforces the pre-conditions around side effects: availability is re-checked
// immediately before every booking, and cancelled bookings are terminal.
type Dispatcher struct {
	API       resdiary.Client
	Catalog   catalogRepo.CatalogRepository
	Reminders tasks.Scheduler
	Logger    *zap.Logger
	Now       func() time.Time
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Dispatch routes the intent to the matching booking-API operation. The
// returned message is always user-facing natural language; remote errors are
// surfaced in it verbatim, never swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, intent models.Intent, sess *models.Session) (*DispatchResult, error) {
	switch intent.Action {
	case models.ActionCheckAvailability:
		return d.checkAvailability(ctx, intent)
	case models.ActionBook:
		return d.book(ctx, intent, sess)
	case models.ActionGetBooking:
		return d.getBooking(ctx, intent, sess)
	case models.ActionUpdateBooking:
		return d.updateBooking(ctx, intent, sess)
	case models.ActionCancelBooking:
		return d.cancelBooking(ctx, intent, sess)
	default:
		return &DispatchResult{
			Message: "I understand you're interested in booking. How can I help you with your reservation?",
		}, nil
	}
}

func (d *Dispatcher) checkAvailability(ctx context.Context, intent models.Intent) (*DispatchResult, error) {
	if intent.Date == "" && intent.PartySize == 0 {
		return &DispatchResult{Message: "To check availability, could you share the date and how many people?"}, nil
	}
	if intent.PartySize == 0 {
		return &DispatchResult{Message: "Great! How many people will be dining?"}, nil
	}
	if intent.Date == "" {
		return &DispatchResult{Message: "What date would you like? You can say 'tomorrow', 'Friday', or a specific date like 2026-09-15."}, nil
	}

	visitDate, ok := NormalizeDate(intent.Date, d.now())
	if !ok {
		return &DispatchResult{Message: fmt.Sprintf("I couldn't make sense of %q as a date. Could you give me a valid date?", intent.Date)}, nil
	}

	if intent.Restaurant != "" {
		microsite := d.resolveRestaurant(intent.Restaurant)
		return d.checkSingleRestaurant(ctx, microsite, visitDate, intent.PartySize)
	}
	return d.checkAllRestaurants(ctx, visitDate, intent.PartySize)
}

func (d *Dispatcher) checkSingleRestaurant(ctx context.Context, microsite, visitDate string, partySize int) (*DispatchResult, error) {
	result, err := d.API.CheckAvailability(ctx, microsite, visitDate, partySize)
	if err != nil {
		return &DispatchResult{Message: fmt.Sprintf("I'm sorry, I couldn't check availability right now: %s", remoteReason(err))}, nil
	}

	times := result.OpenTimes()
	name := d.displayName(microsite)
	if len(times) == 0 {
		return &DispatchResult{Message: fmt.Sprintf(
			"I'm sorry, %s doesn't have availability on %s for %d people. Would you like to try a different date or restaurant?",
			name, visitDate, partySize)}, nil
	}

	return &DispatchResult{
		Message: fmt.Sprintf("%s has availability on %s for %d people. Available times: %s. Which time would you like?",
			name, visitDate, partySize, summarizeTimes(times)),
		Availability: &models.AvailabilityData{
			Date:           visitDate,
			PartySize:      partySize,
			Restaurant:     microsite,
			AvailableTimes: times,
		},
	}, nil
}

// checkAllRestaurants fans out the availability search across the whole
// catalog. The searches are independent, so they run concurrently; results
// keep the catalog's deterministic order.
func (d *Dispatcher) checkAllRestaurants(ctx context.Context, visitDate string, partySize int) (*DispatchResult, error) {
	restaurants, err := d.Catalog.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant catalog: %w", err)
	}

	results := make([]*models.AvailabilityResult, len(restaurants))
	var wg sync.WaitGroup
	for i, rest := range restaurants {
		wg.Add(1)
		go func(i int, microsite string) {
			defer wg.Done()
			result, err := d.API.CheckAvailability(ctx, microsite, visitDate, partySize)
			if err != nil {
				d.Logger.Warn("Availability check failed",
					zap.String("restaurant", microsite), zap.Error(err))
				return
			}
			results[i] = result
		}(i, rest.Microsite)
	}
	wg.Wait()

	available := make(map[string]models.RestaurantAvailability)
	var qualified []int
	for i, result := range results {
		if result == nil {
			continue
		}
		times := result.OpenTimes()
		if len(times) == 0 {
			continue
		}
		available[restaurants[i].Microsite] = models.RestaurantAvailability{
			Restaurant:     restaurants[i],
			AvailableTimes: times,
		}
		qualified = append(qualified, i)
	}

	if len(qualified) == 0 {
		return &DispatchResult{Message: fmt.Sprintf(
			"I'm sorry, none of our restaurants have availability on %s for %d people. Would you like to try a different date?",
			visitDate, partySize)}, nil
	}

	data := &models.AvailabilityData{
		Date:        visitDate,
		PartySize:   partySize,
		Restaurants: available,
	}

	if len(qualified) == 1 {
		rest := restaurants[qualified[0]]
		times := available[rest.Microsite].AvailableTimes
		data.Restaurant = rest.Microsite
		data.AvailableTimes = times
		return &DispatchResult{
			Message: fmt.Sprintf("Good news! %s has availability on %s for %d people. Available times: %s.",
				rest.Name, visitDate, partySize, summarizeTimes(times)),
			Availability: data,
		}, nil
	}

	var names []string
	for _, i := range qualified {
		names = append(names, restaurants[i].Name)
	}
	return &DispatchResult{
		Message: fmt.Sprintf("I found availability on %s for %d people at: %s. Which restaurant interests you?",
			visitDate, partySize, strings.Join(names, ", ")),
		Availability: data,
	}, nil
}

func (d *Dispatcher) book(ctx context.Context, intent models.Intent, sess *models.Session) (*DispatchResult, error) {
	if msg, incomplete := d.nextBookingQuestion(ctx, intent); incomplete {
		return &DispatchResult{Message: msg}, nil
	}

	visitDate, ok := NormalizeDate(intent.Date, d.now())
	if !ok {
		return &DispatchResult{Message: fmt.Sprintf(
			"I couldn't make sense of %q as a date. Could you give me a valid date, like 'tomorrow' or '2026-09-15'?", intent.Date)}, nil
	}
	visitTime, ok := NormalizeTime(intent.Time)
	if !ok {
		return &DispatchResult{Message: fmt.Sprintf(
			"I couldn't make sense of %q as a time. Could you give me a time like '7pm' or '19:30'?", intent.Time)}, nil
	}

	microsite := d.resolveRestaurant(intent.Restaurant)
	name := d.displayName(microsite)

	// Availability is never trusted across turns: a slot can disappear
	// between check and book, so re-check immediately before booking.
	availability, err := d.API.CheckAvailability(ctx, microsite, visitDate, intent.PartySize)
	if err != nil {
		return &DispatchResult{Message: fmt.Sprintf(
			"I'm sorry, I couldn't verify availability right now: %s. Please try again later.", remoteReason(err))}, nil
	}
	if !availability.HasTime(visitTime) {
		open := availability.OpenTimes()
		if len(open) == 0 {
			return &DispatchResult{Message: fmt.Sprintf(
				"I'm sorry, %s has no availability on %s for %d people. Would you like to try a different date?",
				name, visitDate, intent.PartySize)}, nil
		}
		return &DispatchResult{Message: fmt.Sprintf(
			"I'm sorry, %s isn't available at %s on %s. The nearest available times are: %s. Would one of those work?",
			name, visitTime, visitDate, strings.Join(nearestTimes(open, visitTime, 3), ", "))}, nil
	}

	record, err := d.API.CreateBooking(ctx, microsite, resdiary.BookingRequest{
		VisitDate:       visitDate,
		VisitTime:       visitTime,
		PartySize:       intent.PartySize,
		Name:            intent.Name,
		Email:           intent.Email,
		Phone:           intent.Phone,
		SpecialRequests: intent.SpecialRequests,
	})
	if err != nil {
		if isMissingReference(err) {
			d.Logger.Error("Booking accepted without a reference", zap.Error(err))
			return &DispatchResult{Message: "The booking was processed but no reference number came back, so I can't confirm it. Please contact the restaurant directly before trying again."}, nil
		}
		return &DispatchResult{Message: fmt.Sprintf("Booking failed: %s", remoteReason(err))}, nil
	}

	sess.Slots.BookingReference = record.Reference
	d.recordOutcome(sess, models.ActionBook, record.Reference, record.Status)
	d.scheduleReminder(models.ReminderPayload{
		Microsite:     microsite,
		Reference:     record.Reference,
		VisitDate:     visitDate,
		VisitTime:     visitTime,
		PartySize:     intent.PartySize,
		CustomerName:  intent.Name,
		CustomerEmail: intent.Email,
	})

	status := record.Status
	if status == "" {
		status = "confirmed"
	}
	message := fmt.Sprintf(
		"🎉 Reservation confirmed!\nRestaurant: %s\nDate: %s\nTime: %s\nParty size: %d people\nCustomer: %s\nReference: %s",
		name, visitDate, visitTime, intent.PartySize, intent.Name, record.Reference)

	return &DispatchResult{
		Message: message,
		Booking: &models.BookingData{
			Reference:    record.Reference,
			Status:       status,
			Restaurant:   microsite,
			Date:         visitDate,
			Time:         visitTime,
			PartySize:    intent.PartySize,
			CustomerName: intent.Name,
			Verified:     true,
		},
	}, nil
}

// nextBookingQuestion asks for exactly one missing booking slot per turn, in
// a fixed order, proposing concrete times when the context allows it.
func (d *Dispatcher) nextBookingQuestion(ctx context.Context, intent models.Intent) (string, bool) {
	slots := models.BookingSlots{
		Restaurant: intent.Restaurant,
		Date:       intent.Date,
		Time:       intent.Time,
		PartySize:  intent.PartySize,
		Name:       intent.Name,
		Email:      intent.Email,
	}
	missing := slots.MissingForBooking()
	if len(missing) == 0 {
		return "", false
	}

	switch missing[0] {
	case "restaurant":
		return "Which restaurant would you like to book? Options include: " + d.catalogOptions() + ".", true
	case "date":
		return "What date would you like? You can say 'tomorrow', 'Friday', or a specific date like 2026-09-15.", true
	case "party_size":
		return "How many people will be dining?", true
	case "time":
		if proposal := d.proposeTimes(ctx, intent); proposal != "" {
			return proposal, true
		}
		return "What time would you like? For example '7pm' or '19:30'.", true
	case "name":
		return "What name should I put the booking under?", true
	default:
		return "What's the best email for your confirmation?", true
	}
}

// proposeTimes offers open times for the already-known restaurant, date and
// party size when asking which time the user wants.
func (d *Dispatcher) proposeTimes(ctx context.Context, intent models.Intent) string {
	visitDate, ok := NormalizeDate(intent.Date, d.now())
	if !ok || intent.PartySize == 0 {
		return ""
	}
	microsite := d.resolveRestaurant(intent.Restaurant)
	availability, err := d.API.CheckAvailability(ctx, microsite, visitDate, intent.PartySize)
	if err != nil {
		return ""
	}
	times := availability.OpenTimes()
	if len(times) == 0 {
		return ""
	}
	return fmt.Sprintf("These times are available on %s: %s. Which time would you like?",
		visitDate, summarizeTimes(times))
}

func (d *Dispatcher) getBooking(ctx context.Context, intent models.Intent, sess *models.Session) (*DispatchResult, error) {
	if intent.BookingReference == "" {
		return &DispatchResult{Message: "To check your booking, I need your booking reference number. Can you provide it?"}, nil
	}

	record, microsite, err := d.findBooking(ctx, intent.BookingReference)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &DispatchResult{Message: fmt.Sprintf(
			"I couldn't find a booking with reference %s. Please check the reference number and try again.", intent.BookingReference)}, nil
	}

	name := d.displayName(microsite)
	d.recordOutcome(sess, models.ActionGetBooking, record.Reference, record.Status)

	data := &models.BookingData{
		Reference:    record.Reference,
		Status:       record.Status,
		Restaurant:   microsite,
		Date:         record.VisitDate,
		Time:         record.VisitTime,
		PartySize:    record.PartySize,
		CustomerName: record.Customer.FullName(),
	}

	if record.Cancelled() {
		message := fmt.Sprintf(
			"This booking has been cancelled.\nReference: %s\nRestaurant: %s\nOriginal date: %s at %s\nParty size: %d people",
			record.Reference, name, record.VisitDate, record.VisitTime, record.PartySize)
		if record.CancelledAt != "" {
			message += "\nCancelled on: " + record.CancelledAt
		}
		if record.CancellationReason != "" {
			message += "\nReason: " + record.CancellationReason
		}
		message += "\nIf you'd like to make a new reservation, I'd be happy to help!"
		return &DispatchResult{Message: message, Booking: data}, nil
	}

	message := fmt.Sprintf(
		"Here are your booking details.\nReference: %s\nRestaurant: %s\nDate: %s at %s\nParty size: %d people\nCustomer: %s\nStatus: %s",
		record.Reference, name, record.VisitDate, record.VisitTime, record.PartySize,
		record.Customer.FullName(), record.Status)
	if record.SpecialRequests != "" {
		message += "\nSpecial requests: " + record.SpecialRequests
	}
	return &DispatchResult{Message: message, Booking: data}, nil
}

func (d *Dispatcher) updateBooking(ctx context.Context, intent models.Intent, sess *models.Session) (*DispatchResult, error) {
	if intent.BookingReference == "" {
		return &DispatchResult{Message: "To modify your booking, I need your booking reference number. Can you provide it?"}, nil
	}

	// Known-terminal references are refused locally, before any remote call.
	if sess.ReferenceCancelled(intent.BookingReference) {
		return &DispatchResult{Message: fmt.Sprintf(
			"Booking %s has already been cancelled and cannot be modified. If you'd like to make a new reservation, I'd be happy to help!",
			intent.BookingReference)}, nil
	}

	record, microsite, err := d.findBooking(ctx, intent.BookingReference)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &DispatchResult{Message: fmt.Sprintf(
			"I couldn't find a booking with reference %s. Please check the reference number and try again.", intent.BookingReference)}, nil
	}

	name := d.displayName(microsite)
	if record.Cancelled() {
		d.recordOutcome(sess, models.ActionUpdateBooking, record.Reference, record.Status)
		return &DispatchResult{Message: fmt.Sprintf(
			"Booking %s at %s has already been cancelled and cannot be modified. If you'd like to make a new reservation, I'd be happy to help!",
			record.Reference, name)}, nil
	}

	changes, problem := d.collectChanges(intent)
	if problem != "" {
		return &DispatchResult{Message: problem}, nil
	}
	if changes.Empty() {
		return &DispatchResult{Message: "What would you like to change about your booking? Date, time, or party size?"}, nil
	}

	// A new date or party size needs a fresh availability check before the
	// update is applied; an unavailable slot leaves the booking untouched.
	if changes.Date != "" || changes.PartySize > 0 {
		checkDate := changes.Date
		if checkDate == "" {
			checkDate = record.VisitDate
		}
		checkParty := changes.PartySize
		if checkParty == 0 {
			checkParty = record.PartySize
		}
		checkTime := changes.Time
		if checkTime == "" {
			checkTime = record.VisitTime
		}

		availability, err := d.API.CheckAvailability(ctx, microsite, checkDate, checkParty)
		if err != nil {
			return &DispatchResult{Message: fmt.Sprintf(
				"I'm sorry, I couldn't verify availability for the change: %s. Your booking is unchanged.", remoteReason(err))}, nil
		}
		if !availability.HasTime(checkTime) {
			open := availability.OpenTimes()
			if len(open) == 0 {
				return &DispatchResult{Message: fmt.Sprintf(
					"I'm sorry, %s has no availability on %s for %d people, so I've left your booking unchanged.",
					name, checkDate, checkParty)}, nil
			}
			return &DispatchResult{Message: fmt.Sprintf(
				"I'm sorry, %s isn't available at %s on %s, so I've left your booking unchanged. The nearest available times are: %s.",
				name, checkTime, checkDate, strings.Join(nearestTimes(open, checkTime, 3), ", "))}, nil
		}
	}

	updated, err := d.API.UpdateBooking(ctx, microsite, intent.BookingReference, changes)
	if err != nil {
		if isMissingReference(err) {
			d.Logger.Error("Update accepted without a reference", zap.Error(err))
			return &DispatchResult{Message: "The update was processed but no reference number came back, so I can't confirm it. Please contact the restaurant directly."}, nil
		}
		return &DispatchResult{Message: fmt.Sprintf("I couldn't update booking %s: %s", intent.BookingReference, remoteReason(err))}, nil
	}

	d.recordOutcome(sess, models.ActionUpdateBooking, updated.Reference, updated.Status)

	changed := make(map[string]string)
	message := fmt.Sprintf("Your booking has been updated!\nReference: %s\nRestaurant: %s", updated.Reference, name)
	if changes.Date != "" {
		changed["date"] = changes.Date
		message += "\nNew date: " + changes.Date
	}
	if changes.Time != "" {
		changed["time"] = changes.Time
		message += "\nNew time: " + changes.Time
	}
	if changes.PartySize > 0 {
		changed["party_size"] = strconv.Itoa(changes.PartySize)
		message += fmt.Sprintf("\nNew party size: %d people", changes.PartySize)
	}

	return &DispatchResult{
		Message: message,
		Booking: &models.BookingData{
			Reference:  updated.Reference,
			Status:     "updated",
			Restaurant: microsite,
			Changes:    changed,
		},
	}, nil
}

// collectChanges normalizes the changed fields, reporting a clarifying
// question when a value cannot be understood.
func (d *Dispatcher) collectChanges(intent models.Intent) (models.BookingChanges, string) {
	var changes models.BookingChanges

	if intent.Date != "" {
		normalized, ok := NormalizeDate(intent.Date, d.now())
		if !ok {
			return changes, fmt.Sprintf("Please provide a valid date for the change. %q is not a date I can understand.", intent.Date)
		}
		changes.Date = normalized
	}
	if intent.Time != "" {
		normalized, ok := NormalizeTime(intent.Time)
		if !ok {
			return changes, fmt.Sprintf("Please provide a valid time for the change. %q is not a time I can understand.", intent.Time)
		}
		changes.Time = normalized
	}
	if intent.PartySize > 0 {
		changes.PartySize = intent.PartySize
	}
	return changes, ""
}

func (d *Dispatcher) cancelBooking(ctx context.Context, intent models.Intent, sess *models.Session) (*DispatchResult, error) {
	if intent.BookingReference == "" {
		return &DispatchResult{Message: "To cancel your booking, I need your booking reference number. Can you provide it?"}, nil
	}

	if sess.ReferenceCancelled(intent.BookingReference) {
		return &DispatchResult{Message: fmt.Sprintf(
			"Booking %s has already been cancelled. No further action is needed.", intent.BookingReference)}, nil
	}

	record, microsite, err := d.findBooking(ctx, intent.BookingReference)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &DispatchResult{Message: fmt.Sprintf(
			"I couldn't find a booking with reference %s. Please check the reference number and try again.", intent.BookingReference)}, nil
	}

	name := d.displayName(microsite)
	if record.Cancelled() {
		// Idempotent: the remote cancel operation is never repeated.
		d.recordOutcome(sess, models.ActionCancelBooking, record.Reference, record.Status)
		return &DispatchResult{Message: fmt.Sprintf(
			"Booking %s at %s has already been cancelled. No further action is needed.", record.Reference, name)}, nil
	}

	cancelled, err := d.API.CancelBooking(ctx, microsite, intent.BookingReference, customerRequestReason)
	if err != nil {
		if isMissingReference(err) {
			d.Logger.Error("Cancel accepted without a reference", zap.Error(err))
			return &DispatchResult{Message: "The cancellation was processed but no reference number came back, so I can't confirm it. Please contact the restaurant directly."}, nil
		}
		return &DispatchResult{Message: fmt.Sprintf("I couldn't cancel booking %s: %s", intent.BookingReference, remoteReason(err))}, nil
	}

	d.recordOutcome(sess, models.ActionCancelBooking, cancelled.Reference, "cancelled")

	return &DispatchResult{
		Message: fmt.Sprintf(
			"Your booking has been cancelled.\nReference: %s\nRestaurant: %s\nWe're sorry to see you cancel. We hope to see you again soon!",
			cancelled.Reference, name),
		Booking: &models.BookingData{
			Reference:  cancelled.Reference,
			Status:     "cancelled",
			Restaurant: microsite,
		},
	}, nil
}

// findBooking probes each catalog restaurant in its fixed order, stopping at
// the first one that knows the reference. The session rarely knows which
// restaurant a reference belongs to, because the remote API is partitioned.
func (d *Dispatcher) findBooking(ctx context.Context, reference string) (*models.BookingRecord, string, error) {
	restaurants, err := d.Catalog.List()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load restaurant catalog: %w", err)
	}

	for _, rest := range restaurants {
		record, err := d.API.GetBooking(ctx, rest.Microsite, reference)
		if err != nil {
			continue
		}
		return record, rest.Microsite, nil
	}
	return nil, "", nil
}

// scheduleReminder queues a pre-visit reminder for a confirmed booking.
// Visits too close for the configured lead get no reminder, and a queue
// failure never disturbs the booking itself.
func (d *Dispatcher) scheduleReminder(payload models.ReminderPayload) {
	if d.Reminders == nil {
		return
	}
	visitAt, err := time.ParseInLocation("2006-01-02 15:04:05", payload.VisitDate+" "+payload.VisitTime, time.Local)
	if err != nil {
		return
	}
	lead := config.ReminderLead()
	if lead <= 0 {
		lead = 24 * time.Hour
	}
	fireAt := visitAt.Add(-lead)
	if !fireAt.After(d.now()) {
		return
	}
	if err := d.Reminders.ScheduleBookingReminder(payload, fireAt); err != nil {
		d.Logger.Warn("Booking confirmed but reminder was not scheduled",
			zap.String("reference", payload.Reference), zap.Error(err))
	}
}

// recordOutcome stores the dispatcher outcome on the session for later
// idempotency checks.
func (d *Dispatcher) recordOutcome(sess *models.Session, action models.Action, reference, status string) {
	sess.LastActionResult = &models.ActionResult{
		Action:    action,
		Reference: reference,
		Status:    status,
		At:        d.now(),
	}
}

// resolveRestaurant maps free text to a microsite name, keeping the raw text
// when the catalog cannot resolve it so the remote error stays meaningful.
func (d *Dispatcher) resolveRestaurant(value string) string {
	if microsite := d.Catalog.Resolve(value); microsite != "" {
		return microsite
	}
	return value
}

func (d *Dispatcher) displayName(microsite string) string {
	if rest, err := d.Catalog.GetByMicrosite(microsite); err == nil {
		return rest.Name
	}
	return microsite
}

func (d *Dispatcher) catalogOptions() string {
	restaurants, err := d.Catalog.List()
	if err != nil || len(restaurants) == 0 {
		return "The Hungry Unicorn, Pizza Palace, Sushi Zen, Cafe Bistro"
	}
	var options []string
	for _, rest := range restaurants {
		if rest.Cuisine != "" {
			options = append(options, fmt.Sprintf("%s (%s)", rest.Name, rest.Cuisine))
		} else {
			options = append(options, rest.Name)
		}
	}
	return strings.Join(options, ", ")
}

func isMissingReference(err error) bool {
	var missing *resdiary.ErrMissingReference
	return errors.As(err, &missing)
}

// remoteReason strips the wire framing off a booking API error so the
// remote message can be surfaced to the user verbatim.
func remoteReason(err error) string {
	var apiErr *resdiary.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// summarizeTimes shows at most five times, with an ellipsis when truncated.
func summarizeTimes(times []string) string {
	if len(times) <= 5 {
		return strings.Join(times, ", ")
	}
	return strings.Join(times[:5], ", ") + "..."
}

// nearestTimes returns up to n open times ordered by distance from the
// requested time.
func nearestTimes(open []string, want string, n int) []string {
	wantMinutes := clockMinutes(want)
	sorted := make([]string, len(open))
	copy(sorted, open)
	sort.SliceStable(sorted, func(i, j int) bool {
		return absInt(clockMinutes(sorted[i])-wantMinutes) < absInt(clockMinutes(sorted[j])-wantMinutes)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// clockMinutes converts HH:MM:SS to minutes since midnight.
func clockMinutes(t string) int {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0
	}
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	return hour*60 + minute
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
