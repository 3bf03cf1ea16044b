package config

import (
	"github.com/akingscoffee/coffee_shop/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type menuEntry struct {
	Name        string
	Description string
	Price       string
	Category    string
	ImageURL    string
}

var menu = []menuEntry{
	{"Classic Espresso", "Rich and bold single shot of pure Italian espresso", "2.95", "espresso", "https://images.unsplash.com/photo-1510591509098-f4fdc6d0ff04"},
	{"Double Espresso", "Double shot for those who need an extra kick", "3.95", "espresso", "https://images.unsplash.com/photo-1579992357154-faf4bde95b3d"},
	{"Americano", "Espresso diluted with hot water for a smooth coffee experience", "3.50", "espresso", "https://images.unsplash.com/photo-1514432324607-a09d9b4aefdd"},
	{"Cappuccino", "Perfect balance of espresso, steamed milk, and foam", "4.50", "espresso", "https://images.unsplash.com/photo-1572442388796-11668a67e53d"},
	{"Latte", "Smooth espresso with steamed milk and a touch of foam", "4.75", "espresso", "https://images.unsplash.com/photo-1461023058943-07fcbe16d735"},
	{"Flat White", "Velvety microfoam over a double shot of espresso", "4.95", "espresso", "https://images.unsplash.com/photo-1545665225-b23b99e4d45e"},
	{"Macchiato", "Espresso marked with a dollop of foamed milk", "3.75", "espresso", "https://images.unsplash.com/photo-1517487881594-2787fef5ebf7"},
	{"Caramel Macchiato", "Vanilla-flavored latte with caramel drizzle", "5.50", "specialty", "https://images.unsplash.com/photo-1599826064848-80c8f2f6122b"},
	{"Mocha", "Rich chocolate blended with espresso and steamed milk", "5.25", "specialty", "https://images.unsplash.com/photo-1607013251379-e6eecfffe234"},
	{"White Mocha", "Sweet white chocolate mocha with whipped cream", "5.50", "specialty", "https://images.unsplash.com/photo-1578314675249-a6910f80cc4e"},
	{"Vanilla Latte", "Classic latte infused with smooth vanilla", "5.00", "specialty", "https://images.unsplash.com/photo-1576092768241-dec231879fc3"},
	{"Hazelnut Latte", "Nutty hazelnut flavor meets creamy latte", "5.00", "specialty", "https://images.unsplash.com/photo-1541167760496-1628856ab772"},
	{"Iced Coffee", "Smooth cold brew served over ice", "4.25", "cold", "https://images.unsplash.com/photo-1517487881594-2787fef5ebf7"},
	{"Iced Latte", "Chilled espresso with cold milk over ice", "4.95", "cold", "https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6"},
	{"Iced Cappuccino", "Cold version of the classic cappuccino", "5.25", "cold", "https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6"},
	{"Cold Brew", "Slow-steeped for 20 hours for a super smooth caffeine-packed punch", "4.75", "cold", "https://images.unsplash.com/photo-1517701604599-bb29b565090c"},
	{"Iced Mocha", "Chocolate and espresso over ice with whipped cream", "5.50", "cold", "https://images.unsplash.com/photo-1607013251379-e6eecfffe234"},
	{"Peppermint Mocha", "Festive mocha with peppermint flavor", "5.75", "seasonal", "https://images.unsplash.com/photo-1607013251379-e6eecfffe234"},
	{"Honey Cinnamon Latte", "Warm latte with honey and cinnamon spice", "5.25", "seasonal", "https://images.unsplash.com/photo-1461023058943-07fcbe16d735"},
	{"Salted Caramel Macchiato", "Sweet caramel with a hint of sea salt", "5.75", "seasonal", "https://images.unsplash.com/photo-1599826064848-80c8f2f6122b"},
	{"Signature Espresso", "Our house blend espresso with rich, bold notes", "3.50", "signature", "https://images.unsplash.com/photo-1510591509098-f4fdc6d0ff04"},
	{"Signature House Blend", "Smooth and balanced pour-over of our proprietary blend", "4.25", "signature", "https://images.unsplash.com/photo-1447933601403-0c6688bcf566"},
	{"Signature Cold Brew", "Our award-winning 24-hour cold brew concentrate", "4.75", "signature", "https://images.unsplash.com/photo-1517701604599-bb29b565090c"},
}

// SeedMenu inserts the default menu. Inserts are keyed by product name so
// running it on every boot never duplicates rows.
func SeedMenu(db *gorm.DB) error {
	for _, m := range menu {
		var count int64
		if err := db.Model(&models.Product{}).Where("name = ?", m.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		price, err := decimal.NewFromString(m.Price)
		if err != nil {
			return err
		}
		product := models.Product{
			Name:        m.Name,
			Description: m.Description,
			Price:       price,
			Category:    m.Category,
			ImageURL:    m.ImageURL,
			Available:   true,
		}
		if err := db.Create(&product).Error; err != nil {
			return err
		}
	}
	return nil
}
