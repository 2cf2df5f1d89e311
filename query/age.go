package query

import (
	"time"

	"github.com/HavvokLab/contact-sync/model"
)

// AgeScript emits the calendar age in whole years at params.now (epoch
// millis, UTC). Documents without a birth date emit 0.
const AgeScript = `if (doc['dateOfBirth'].size() == 0) {
  emit(0);
  return;
}
ZonedDateTime birth = doc['dateOfBirth'].value.withZoneSameInstant(ZoneOffset.UTC);
ZonedDateTime now = Instant.ofEpochMilli(params.now).atZone(ZoneOffset.UTC);
long age = now.getYear() - birth.getYear();
if (now.getMonthValue() < birth.getMonthValue() ||
    (now.getMonthValue() == birth.getMonthValue() && now.getDayOfMonth() < birth.getDayOfMonth())) {
  age--;
}
emit(age);`

// AgeAt computes the same value as AgeScript for a single birth date.
func AgeAt(birth, now time.Time) int {
	b, n := birth.UTC(), now.UTC()
	age := n.Year() - b.Year()
	if n.Month() < b.Month() || (n.Month() == b.Month() && n.Day() < b.Day()) {
		age--
	}

	return age
}

// UserAge is AgeAt for a stored user, 0 when the birth date is unknown.
func UserAge(u model.User, now time.Time) int {
	if u.DateOfBirth == nil {
		return 0
	}

	return AgeAt(*u.DateOfBirth, now)
}

// AgeRuntimeMappings declares the age runtime field evaluated with AgeScript.
func AgeRuntimeMappings(now time.Time) map[string]any {
	return map[string]any{
		model.FieldAge: map[string]any{
			"type": "long",
			"script": map[string]any{
				"source": AgeScript,
				"params": map[string]any{
					"now": now.UnixMilli(),
				},
			},
		},
	}
}
