package utils

import (
	"time"

	"tablebooker/config"

	"github.com/golang-jwt/jwt"
)

// bookingAPIAudience matches the audience the consumer API validates against.
const bookingAPIAudience = "https://api.resdiary.com"

// BookingAPIToken returns the bearer token for the booking API. A statically
// configured token wins; otherwise a short-lived HS256 token is minted from the
// shared secret, mirroring the tokens the consumer API issues.
func BookingAPIToken() (string, error) {
	if token := config.AppConfig.BookingAPIToken; token != "" {
		return token, nil
	}
	return MintBookingAPIToken(24 * time.Hour)
}

// MintBookingAPIToken creates a signed JWT accepted by the booking API,
// expiring after the specified duration.
func MintBookingAPIToken(duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"unique_name": "tablebooker-agent",
		"iss":         "Self",
		"aud":         bookingAPIAudience,
		"nbf":         now.Unix(),
		"iat":         now.Unix(),
		"exp":         now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.BookingAPISecret))
}
