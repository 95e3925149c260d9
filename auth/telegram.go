package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Nellmory/MehaAndShubi/models"
)

// TelegramAuthMaxAge is the replay window: widget payloads older than
// this are rejected even with a valid signature.
const TelegramAuthMaxAge = time.Hour

var (
	ErrTelegramSignature = errors.New("invalid telegram authentication data")
	ErrTelegramExpired   = errors.New("telegram authentication data is outdated")
)

// VerifyTelegramAuth checks a Telegram login-widget payload against the
// bot token. The check string is the payload minus "hash", sorted by key
// and joined as key=value lines; the HMAC key is SHA-256 of the bot
// token. Signature and freshness failures are distinguishable by error.
func VerifyTelegramAuth(data map[string]string, botToken string, now time.Time) error {
	received, ok := data["hash"]
	if !ok {
		return ErrTelegramSignature
	}

	keys := make([]string, 0, len(data)-1)
	for k := range data {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+data[k])
	}
	checkString := strings.Join(lines, "\n")

	secretKey := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secretKey[:])
	mac.Write([]byte(checkString))
	computed := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computed), []byte(received)) {
		return ErrTelegramSignature
	}

	// Missing or malformed auth_date counts as age zero, i.e. expired.
	authDate, _ := strconv.ParseInt(data["auth_date"], 10, 64)
	if now.Unix()-authDate > int64(TelegramAuthMaxAge.Seconds()) {
		return ErrTelegramExpired
	}
	return nil
}

// GetOrCreateTelegramUser resolves a verified payload to a local user
// under the stable username tg_<telegram_id>. An existing user is reused
// untouched; a new one gets first/last name from the payload and, when
// the payload carries a Telegram username, a placeholder email.
func GetOrCreateTelegramUser(db *gorm.DB, data map[string]string) (*models.User, error) {
	username := "tg_" + data["id"]

	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		Username:  username,
		FirstName: data["first_name"],
		LastName:  data["last_name"],
	}
	if tgUsername, ok := data["username"]; ok && tgUsername != "" {
		user.Email = tgUsername + "@telegram.com"
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
