package store

import "github.com/erazemk/cargotrack/internal/model"

// SeedItems returns the cargo records the dashboard starts with.
func SeedItems() []model.Item {
	return []model.Item{
		{ID: 1, Code: "CRG-001-2024", Name: "Elektronik Consumer - Smartphone", Status: model.ItemStatusInWarehouse, Customer: "PT Tech Indo", Date: "15 Jan 2024", Quantity: 50, Weight: "25 kg", Destination: "Jakarta", Description: "Smartphone untuk retail"},
		{ID: 2, Code: "CRG-002-2024", Name: "Spare Part Otomotif - Filter Oli", Status: model.ItemStatusInContainer, Customer: "CV Motor Sejahtera", Date: "14 Jan 2024", Quantity: 200, Weight: "50 kg", Destination: "Surabaya", Description: "Filter oli untuk kendaraan"},
		{ID: 3, Code: "CRG-003-2024", Name: "Textil - Kain Katun Premium", Status: model.ItemStatusDelayed, Customer: "Toko Kain Makmur", Date: "12 Jan 2024", Quantity: 75, Weight: "30 kg", Destination: "Bandung", Description: "Kain katun berkualitas tinggi"},
		{ID: 4, Code: "CRG-004-2024", Name: "Makanan Kemasan - Snack Export", Status: model.ItemStatusShipped, Customer: "PT Food Global", Date: "13 Jan 2024", Quantity: 300, Weight: "100 kg", Destination: "Medan", Description: "Snack untuk ekspor"},
		{ID: 5, Code: "CRG-005-2024", Name: "Peralatan Rumah Tangga - Blender", Status: model.ItemStatusInWarehouse, Customer: "Toko Elektronik Barokah", Date: "16 Jan 2024", Quantity: 25, Weight: "15 kg", Destination: "Yogyakarta", Description: "Blender untuk rumah tangga"},
		{ID: 6, Code: "CRG-006-2024", Name: "Kosmetik Import - Skincare Set", Status: model.ItemStatusInContainer, Customer: "Beauty Store Cantik", Date: "11 Jan 2024", Quantity: 100, Weight: "20 kg", Destination: "Makassar", Description: "Set perawatan kulit import"},
	}
}

// SeedCustomers returns the customer records the dashboard starts with.
func SeedCustomers() []model.Customer {
	return []model.Customer{
		{ID: 1, Name: "Budi Santoso", Company: "PT Tech Indo Makmur", Email: "budi@techindo.com", Phone: "+62 812-3456-7890", Address: "Jl. Sudirman No. 123, Jakarta Pusat", Status: model.CustomerStatusActive, Type: model.CustomerTypePremium, TotalOrders: 45, LastOrder: "15 Jan 2024", JoinDate: "10 Mar 2023", Notes: "Pelanggan prioritas"},
		{ID: 2, Name: "Siti Nurhaliza", Company: "CV Motor Sejahtera", Email: "siti@motorsejahtera.co.id", Phone: "+62 813-2468-1357", Address: "Jl. Ahmad Yani No. 456, Surabaya", Status: model.CustomerStatusActive, Type: model.CustomerTypeRegular, TotalOrders: 32, LastOrder: "14 Jan 2024", JoinDate: "15 Jun 2023"},
		{ID: 3, Name: "Ahmad Rahman", Company: "Toko Kain Makmur", Email: "ahmad@kainmakmur.com", Phone: "+62 814-9876-5432", Address: "Jl. Malioboro No. 789, Yogyakarta", Status: model.CustomerStatusPending, Type: model.CustomerTypeRegular, TotalOrders: 18, LastOrder: "12 Jan 2024", JoinDate: "20 Aug 2023", Notes: "Menunggu verifikasi dokumen"},
		{ID: 4, Name: "Dewi Kartika", Company: "PT Food Global Indonesia", Email: "dewi@foodglobal.id", Phone: "+62 815-1111-2222", Address: "Jl. Gatot Subroto No. 321, Jakarta Selatan", Status: model.CustomerStatusActive, Type: model.CustomerTypeVIP, TotalOrders: 67, LastOrder: "16 Jan 2024", JoinDate: "05 Jan 2023", Notes: "Pelanggan VIP dengan volume tinggi"},
		{ID: 5, Name: "Rizki Pratama", Company: "Toko Elektronik Barokah", Email: "rizki@elektronikbarokah.com", Phone: "+62 816-3333-4444", Address: "Jl. Pahlawan No. 654, Medan", Status: model.CustomerStatusInactive, Type: model.CustomerTypeRegular, TotalOrders: 23, LastOrder: "08 Jan 2024", JoinDate: "12 Sep 2023", Notes: "Tidak aktif sejak 3 bulan terakhir"},
		{ID: 6, Name: "Maya Sari", Company: "Beauty Store Cantik", Email: "maya@beautycantik.co.id", Phone: "+62 817-5555-6666", Address: "Jl. Dipati Ukur No. 987, Bandung", Status: model.CustomerStatusActive, Type: model.CustomerTypePremium, TotalOrders: 41, LastOrder: "15 Jan 2024", JoinDate: "28 Apr 2023", Notes: "Fokus pada produk kosmetik"},
	}
}
