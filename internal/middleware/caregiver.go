package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const caregiverKey ctxKey = "caregiver"

// CaregiverHeader identifica qué cuidador usa el dispositivo. No es
// autenticación: solo completa logged_by cuando el payload no lo trae.
const CaregiverHeader = "X-Caregiver"

// maxCaregiverLen acota el nombre; es texto corto que va a una celda.
const maxCaregiverLen = 40

func Caregiver(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.Header.Get(CaregiverHeader))
		if name == "" {
			next.ServeHTTP(w, r)
			return
		}
		if len([]rune(name)) > maxCaregiverLen {
			name = string([]rune(name)[:maxCaregiverLen])
		}

		ctx := context.WithValue(r.Context(), caregiverKey, name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetCaregiver(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(caregiverKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
