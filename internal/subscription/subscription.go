// Package subscription вычисляет статус доступа пользователя
// по сохранённому флагу подписки и дате окончания пробного периода.
//
// Статус никогда не хранится в готовом виде: он пересчитывается функцией Derive
// на каждый запрос, и этой же функцией пользуются регистрация и чтение профиля.
package subscription

import (
	"math"
	"time"
)

// Status статус подписки.
type Status string

const (
	StatusTrial   Status = "trial"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

const (
	// TrialPeriod длительность пробного периода с первого входа.
	TrialPeriod = 14 * 24 * time.Hour

	day = 24 * time.Hour
)

// State вычисленный статус и количество оставшихся дней пробного периода.
type State struct {
	Status   Status `json:"status"`
	DaysLeft int    `json:"daysLeft"`
}

// HasAccess сообщает, открыт ли доступ к инструментам.
func (s State) HasAccess() bool {
	return s.Status == StatusActive || s.Status == StatusTrial
}

// Derive возвращает статус на момент now.
//
//   - active, если оплаченная подписка активна;
//   - trial и ceil(остаток/сутки), если пробный период ещё не истёк;
//   - expired во всех остальных случаях.
func Derive(now time.Time, stored Status, trialExpiresAt *time.Time) State {
	if stored == StatusActive {
		return State{Status: StatusActive}
	}
	if trialExpiresAt != nil && now.Before(*trialExpiresAt) {
		left := trialExpiresAt.Sub(now)
		return State{
			Status:   StatusTrial,
			DaysLeft: int(math.Ceil(float64(left) / float64(day))),
		}
	}
	return State{Status: StatusExpired}
}

// Trial даты пробного периода нового пользователя.
type Trial struct {
	StartedAt time.Time
	ExpiresAt time.Time
	Status    Status
}

// NewTrial открывает пробный период, начинающийся в now.
func NewTrial(now time.Time) Trial {
	return Trial{
		StartedAt: now,
		ExpiresAt: now.Add(TrialPeriod),
		Status:    StatusTrial,
	}
}

// FromProviderStatus переводит статус подписки платёжного провайдера в локальный.
// Всё, кроме "active", считается истёкшей подпиской.
func FromProviderStatus(s string) Status {
	if s == string(StatusActive) {
		return StatusActive
	}
	return StatusExpired
}

// Valid сообщает, является ли s одним из известных статусов.
func (s Status) Valid() bool {
	switch s {
	case StatusTrial, StatusActive, StatusExpired:
		return true
	}
	return false
}
