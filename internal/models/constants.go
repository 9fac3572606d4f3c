package models

// Storage keys of the record collections and per-client slots.
const (
	KeyUsers          = "hh_users"
	KeyHostels        = "hh_hostels"
	KeyBookings       = "hh_bookings"
	KeyCurrentUser    = "hh_current_user"
	KeySelectedHostel = "hh_selected_hostel"
)

const (
	HostelIDPrefix  = "h"
	BookingIDPrefix = "b"
)

const (
	// DefaultFallbackOwnerEmail владелец для объектов, добавленных без сессии
	DefaultFallbackOwnerEmail = "owner@example.com"

	// DefaultBasePrice базовая цена объекта при указанном числе комнат
	DefaultBasePrice = 2000

	// DefaultPricePerRoom надбавка за каждую комнату
	DefaultPricePerRoom = 50

	// DefaultFlatPrice цена, если число комнат не указано
	DefaultFlatPrice = 2500

	// DefaultStateTTL время жизни сессии клиента в Redis
	DefaultStateTTL = 30 * 24 * 60 * 60 // 30 дней в секундах

	// RateLimitRPS запросов в секунду на клиента
	RateLimitRPS = 20

	// RateLimitBurst допустимый всплеск запросов
	RateLimitBurst = 40
)

const (
	NoticeNoResults = "No hostels found"
)
