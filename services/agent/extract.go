package agent

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	catalogRepo "tablebooker/database/repository/catalog"
	"tablebooker/models"
)

// Extractor turns one user utterance plus the current session slots into a
// structured intent. Extractors never touch the booking API.
type Extractor interface {
	Extract(ctx context.Context, utterance string, slots models.BookingSlots) (models.Intent, error)
}

// Action keyword lists, checked in priority order: an utterance like
// "cancel my booking and rebook it" must never trigger a new booking.
var (
	cancelKeywords       = []string{"cancel", "cancelled", "delete", "remove"}
	updateKeywords       = []string{"change", "modify", "update", "reschedule", "move"}
	lookupKeywords       = []string{"check my", "my booking", "my reservation", "booking reference", "find my"}
	availabilityKeywords = []string{"availability", "available"}
	bookKeywords         = []string{"book", "reserve", "reservation", "table"}
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{4})\b`),
	regexp.MustCompile(`\b(\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`),
	regexp.MustCompile(`\b(today|tomorrow)\b`),
	regexp.MustCompile(`\b(next\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday))\b`),
	regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
	regexp.MustCompile(`\b((?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?)\b`),
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}:\d{2}\s*(?:am|pm)?)\b`),
	regexp.MustCompile(`\b(\d{1,2}\s*(?:am|pm))\b`),
	regexp.MustCompile(`\bat\s+(\d{1,2})\b`),
}

var partyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d+)\s*people\b`),
	regexp.MustCompile(`\b(\d+)\s*guests\b`),
	regexp.MustCompile(`\bparty of (\d+)\b`),
	regexp.MustCompile(`\btable for (\d+)\b`),
	regexp.MustCompile(`\bfor (\d+)\b`),
}

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

var phonePattern = regexp.MustCompile(`(?i)(?:phone|mobile|number)(?:\s+is)?[:\s]+(\+?[\d][\d\s\-]{6,14}\d)`)

// Booking references are exactly 7 uppercase alphanumerics with at least one
// digit. Patterns run against the uppercased utterance, most specific first.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`BOOKING\s+REFERENCE(?:\s+IS)?\s+([A-Z0-9]{7})\b`),
	regexp.MustCompile(`REFERENCE(?:\s+IS)?\s+([A-Z0-9]{7})\b`),
	regexp.MustCompile(`BOOKING\s+([A-Z0-9]{7})\b`),
	regexp.MustCompile(`REF(?:\s+IS)?\s+([A-Z0-9]{7})\b`),
	regexp.MustCompile(`#([A-Z0-9]{7})\b`),
	regexp.MustCompile(`\b([A-Z0-9]{7})\b`),
}

var referenceShapeRe = regexp.MustCompile(`^[A-Z0-9]{7}$`)

// referenceExcludedWords are ordinary words that happen to fit the reference
// shape and must never be mistaken for one.
var referenceExcludedWords = map[string]bool{
	"BOOKING": true, "TONIGHT": true, "CONFIRM": true, "CHANGES": true,
	"EVENING": true, "JANUARY": true, "OCTOBER": true, "SATURDA": true,
}

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bname is ([A-Za-z][A-Za-z ]*)`),
	regexp.MustCompile(`(?i)\bi'?m ([A-Za-z][A-Za-z ]*)`),
	regexp.MustCompile(`(?i)\bmy name'?s ([A-Za-z][A-Za-z ]*)`),
	regexp.MustCompile(`\b([A-Z][a-z]+ [A-Z][a-z]+)\b`),
}

var nameExcludedWords = []string{
	"book", "table", "people", "tomorrow", "today", "reservation", "email", "phone",
}

// CanonicalReference validates and uppercases a candidate booking reference.
// Returns "" when the candidate does not fit the canonical shape.
func CanonicalReference(candidate string) string {
	ref := strings.ToUpper(strings.TrimSpace(candidate))
	if !referenceShapeRe.MatchString(ref) {
		return ""
	}
	if referenceExcludedWords[ref] {
		return ""
	}
	if !strings.ContainsAny(ref, "0123456789") {
		return ""
	}
	return ref
}

// RuleExtractor is the deterministic pattern-based extractor. It stays fully
// functional without any text-completion backend.
type RuleExtractor struct {
	Catalog catalogRepo.CatalogRepository
}

// Extract classifies the action and pulls every slot independently: absence
// of one slot never blocks extraction of another.
func (e *RuleExtractor) Extract(ctx context.Context, utterance string, slots models.BookingSlots) (models.Intent, error) {
	var intent models.Intent
	lower := strings.ToLower(utterance)

	intent.Action = classifyAction(lower)

	for _, pattern := range datePatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			intent.Date = m[1]
			break
		}
	}

	for _, pattern := range timePatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			intent.Time = strings.TrimSpace(m[1])
			break
		}
	}

	for _, pattern := range partyPatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			if size, err := strconv.Atoi(m[1]); err == nil && size > 0 {
				intent.PartySize = size
			}
			break
		}
	}

	if m := emailPattern.FindString(utterance); m != "" {
		intent.Email = m
	}

	if m := phonePattern.FindStringSubmatch(utterance); m != nil {
		intent.Phone = strings.TrimSpace(m[1])
	}

	upper := strings.ToUpper(utterance)
	for _, pattern := range referencePatterns {
		if m := pattern.FindStringSubmatch(upper); m != nil {
			if ref := CanonicalReference(m[1]); ref != "" {
				intent.BookingReference = ref
				break
			}
		}
	}

	if e.Catalog != nil {
		if microsite := e.Catalog.Resolve(utterance); microsite != "" {
			intent.Restaurant = microsite
		}
	}

	intent.Name = e.extractName(utterance)

	return intent, nil
}

func classifyAction(lower string) models.Action {
	if containsAny(lower, cancelKeywords) {
		return models.ActionCancelBooking
	}
	if containsAny(lower, updateKeywords) {
		return models.ActionUpdateBooking
	}
	if containsAny(lower, lookupKeywords) {
		return models.ActionGetBooking
	}
	if containsAny(lower, availabilityKeywords) {
		return models.ActionCheckAvailability
	}
	if containsAny(lower, bookKeywords) {
		return models.ActionBook
	}
	return models.ActionNone
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func (e *RuleExtractor) extractName(utterance string) string {
	for _, pattern := range namePatterns {
		m := pattern.FindStringSubmatch(utterance)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if candidate == "" || !isAlphaWithSpaces(candidate) {
			continue
		}
		if containsAny(strings.ToLower(candidate), nameExcludedWords) {
			continue
		}
		// A restaurant name is not a customer name.
		if e.Catalog != nil && e.Catalog.Resolve(candidate) != "" {
			continue
		}
		return candidate
	}
	return ""
}

func isAlphaWithSpaces(s string) bool {
	for _, r := range s {
		if r != ' ' && !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
