package statistics

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/confeitapro/confeitapro/app/models"
	"github.com/confeitapro/confeitapro/app/repository"
	"github.com/confeitapro/confeitapro/internal/pkg/cache"
)

const (
	cacheKeyUserStats = "statistics:user:%d" // format with the user id
	cacheExpiration   = 5 * time.Minute
)

// DashboardStats are the counts shown on a user's dashboard.
type DashboardStats struct {
	Customers     int64 `json:"customers"`
	Products      int64 `json:"products"`
	Orders        int64 `json:"orders"`
	PendingOrders int64 `json:"pending_orders"`
}

// GetDashboardStats returns the dashboard counts for a user, served from
// the Redis cache when fresh. Cache failures fall through to the database.
func GetDashboardStats(userID uint) (*DashboardStats, error) {
	key := fmt.Sprintf(cacheKeyUserStats, userID)

	if raw, err := cache.Get(key); err == nil && raw != "" {
		var stats DashboardStats
		if err := json.Unmarshal([]byte(raw), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := computeDashboardStats(userID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(stats); err == nil {
		if err := cache.Set(key, string(raw), cacheExpiration); err != nil {
			log.Printf("statistics: caching stats for user %d failed: %v", userID, err)
		}
	}
	return stats, nil
}

// InvalidateUserStats drops the cached counts after a write.
func InvalidateUserStats(userID uint) {
	if err := cache.Delete(fmt.Sprintf(cacheKeyUserStats, userID)); err != nil {
		log.Printf("statistics: invalidating stats for user %d failed: %v", userID, err)
	}
}

func computeDashboardStats(userID uint) (*DashboardStats, error) {
	repos := repository.GetGlobalRepositories()

	customers, err := repos.Customer.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	orders, err := repos.Order.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	pending, err := repos.Order.CountByUserIDAndStatus(userID, models.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	products, err := repos.Product.CountByUserID(userID)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Customers:     customers,
		Products:      products,
		Orders:        orders,
		PendingOrders: pending,
	}, nil
}
