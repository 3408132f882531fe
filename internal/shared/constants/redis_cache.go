package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values, centralized so modules never collide.
// Pattern: campus:{module}:{operation}:{identifier}

// Cache TTL durations
const (
	TTL_STATIC_SHORT   = 6 * time.Hour    // user profiles
	TTL_SEMI_STATIC    = 1 * time.Hour    // listings that mutate through admin actions
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // member-derived data
)

const (
	CACHE_PREFIX = "campus"
)

// Departments module
const (
	CACHE_KEY_DEPARTMENTS_LIST  = CACHE_PREFIX + ":departments:list"
	CACHE_KEY_DEPARTMENT_DETAIL = CACHE_PREFIX + ":departments:detail:id:" // + department-id
	CACHE_KEY_DEPARTMENT_STATS  = CACHE_PREFIX + ":departments:stats:id:"  // + department-id
)

const (
	TTL_DEPARTMENTS_LIST = TTL_SEMI_STATIC

	// Detail and stats both include member data, which changes on every
	// registration, so they expire on the dynamic horizon.
	TTL_DEPARTMENT_STATS  = TTL_DYNAMIC_MEDIUM
	TTL_DEPARTMENT_DETAIL = TTL_DYNAMIC_MEDIUM
)

// Users module
const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":users:profile:uuid:" // + user-id
)

const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT
)

// Invalidation patterns (for DeletePattern)
const (
	PATTERN_INVALIDATE_DEPARTMENTS = CACHE_PREFIX + ":departments:*"
	PATTERN_INVALIDATE_USER_ALL    = CACHE_PREFIX + ":users:*"
)

func BuildDepartmentDetailKey(id uint) string {
	return CACHE_KEY_DEPARTMENT_DETAIL + fmt.Sprintf("%d", id)
}

func BuildDepartmentStatsKey(id uint) string {
	return CACHE_KEY_DEPARTMENT_STATS + fmt.Sprintf("%d", id)
}

func BuildUserProfileKey(userID string) string {
	return CACHE_KEY_USER_PROFILE + userID
}
