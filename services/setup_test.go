package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plateful/pos-backend/models"
	"github.com/plateful/pos-backend/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.StoreSetting{},
		&models.StaffRole{},
		&models.Table{},
		&models.DiningSession{},
		&models.MenuItem{},
		&models.CustomizationGroup{},
		&models.CustomizationOption{},
		&models.Cart{},
		&models.CartItem{},
		&models.CartItemCustomization{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemCustomization{},
		&models.Payment{},
		&models.Refund{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedStore(t *testing.T, db *gorm.DB, vatRate, svcRate string) models.Store {
	store := models.Store{Name: "Test Store", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	setting := models.StoreSetting{
		StoreID:           store.ID,
		VatRate:           dec(vatRate),
		ServiceChargeRate: dec(svcRate),
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := db.Create(&setting).Error; err != nil {
		t.Fatalf("seed store setting: %v", err)
	}
	return store
}

func seedStaff(t *testing.T, db *gorm.DB, storeID uint, role string) models.User {
	user := models.User{
		Name:      role + " user",
		Email:     fmt.Sprintf("%s-%s@example.com", strings.ToLower(role), uuid.NewString()[:8]),
		Password:  "hashed",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	staffRole := models.StaffRole{UserID: user.ID, StoreID: storeID, Role: role, CreatedAt: time.Now()}
	if err := db.Create(&staffRole).Error; err != nil {
		t.Fatalf("seed staff role: %v", err)
	}
	return user
}

func seedMenuItem(t *testing.T, db *gorm.DB, storeID uint, name, price string) models.MenuItem {
	item := models.MenuItem{
		StoreID:   storeID,
		Name:      name,
		BasePrice: dec(price),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return item
}

func seedOption(t *testing.T, db *gorm.DB, menuItemID uint, name, price string) models.CustomizationOption {
	group := models.CustomizationGroup{
		MenuItemID: menuItemID,
		Name:       name + " group",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("seed customization group: %v", err)
	}
	option := models.CustomizationOption{
		GroupID:         group.ID,
		Name:            name,
		AdditionalPrice: dec(price),
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := db.Create(&option).Error; err != nil {
		t.Fatalf("seed customization option: %v", err)
	}
	return option
}

func seedSession(t *testing.T, db *gorm.DB, storeID uint, sessionType string) (models.DiningSession, models.Cart) {
	session := models.DiningSession{
		StoreID:      storeID,
		Type:         sessionType,
		SessionToken: uuid.NewString(),
		Status:       models.SessionStatusOpen,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	cart := models.Cart{SessionID: session.ID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	return session, cart
}

func seedCartItem(t *testing.T, db *gorm.DB, cartID, menuItemID uint, quantity int, optionIDs ...uint) models.CartItem {
	item := models.CartItem{
		CartID:     cartID,
		MenuItemID: menuItemID,
		Quantity:   quantity,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed cart item: %v", err)
	}
	for _, optID := range optionIDs {
		cust := models.CartItemCustomization{CartItemID: item.ID, CustomizationOptionID: optID, CreatedAt: time.Now()}
		if err := db.Create(&cust).Error; err != nil {
			t.Fatalf("seed cart item customization: %v", err)
		}
	}
	return item
}

// seedOrder writes an order directly with totals derived the same way the
// checkout path derives them.
func seedOrder(t *testing.T, db *gorm.DB, storeID uint, subTotal, vatRate, svcRate string) models.Order {
	session, _ := seedSession(t, db, storeID, models.SessionTypeTakeaway)

	var count int64
	db.Model(&models.Order{}).Where("store_id = ?", storeID).Count(&count)

	now := time.Now()
	totals := pricing.Price(dec(subTotal), dec(vatRate), dec(svcRate), decimal.Zero)
	order := models.Order{
		StoreID:           storeID,
		SessionID:         session.ID,
		OrderNumber:       fmt.Sprintf("%d-%03d", now.Year()*10000+int(now.Month())*100+now.Day(), count+1),
		OrderDate:         now.Year()*10000 + int(now.Month())*100 + now.Day(),
		Sequence:          int(count) + 1,
		Status:            models.OrderStatusPending,
		OrderType:         models.OrderTypeTakeaway,
		TableLabel:        "Takeaway",
		SubTotal:          dec(subTotal),
		VatRate:           dec(vatRate),
		ServiceChargeRate: dec(svcRate),
		VatAmount:         totals.VatAmount,
		ServiceCharge:     totals.ServiceCharge,
		GrandTotal:        totals.GrandTotal,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}
