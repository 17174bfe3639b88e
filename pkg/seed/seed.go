package seed

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"devri_backend/internal/model"
)

func SeedPlans(db *gorm.DB) {
	plans := []struct {
		Name     string
		Slug     string
		PriceMXN float64
		Features []string
		Order    int
	}{
		{
			Name:     "Básico",
			Slug:     "basico",
			PriceMXN: 500,
			Features: []string{
				"Sitio web de una página",
				"Hosting y dominio incluidos",
				"Soporte por correo",
			},
			Order: 1,
		},
		{
			Name:     "Profesional",
			Slug:     "profesional",
			PriceMXN: 1200,
			Features: []string{
				"Sitio web multipágina",
				"Hosting y dominio incluidos",
				"SEO básico",
				"Soporte prioritario",
			},
			Order: 2,
		},
		{
			Name:     "Premium",
			Slug:     "premium",
			PriceMXN: 2500,
			Features: []string{
				"Sitio web a la medida",
				"Hosting y dominio incluidos",
				"SEO avanzado y analítica",
				"Marketing digital mensual",
				"Soporte dedicado",
			},
			Order: 3,
		},
	}

	for _, p := range plans {
		features, _ := json.Marshal(p.Features)
		plan := model.Plan{
			Name:       p.Name,
			Slug:       p.Slug,
			PriceMXN:   p.PriceMXN,
			Features:   features,
			IsActive:   true,
			OrderIndex: p.Order,
		}
		result := db.FirstOrCreate(&plan, model.Plan{Slug: p.Slug})
		if result.Error != nil {
			log.Printf("Error creating plan %s: %v", p.Name, result.Error)
		}
	}

	log.Println("Subscription plans seeded successfully!")
}

func SeedServiceCategories(db *gorm.DB) {
	primaries := []model.ServiceCategory{
		{Name: "Desarrollo Web", Slug: "desarrollo-web", Icon: "code", Type: model.CategoryTypePrimary, OrderIndex: 1, Status: model.CategoryStatusActive},
		{Name: "Marketing Digital", Slug: "marketing-digital", Icon: "megaphone", Type: model.CategoryTypePrimary, OrderIndex: 2, Status: model.CategoryStatusActive},
		{Name: "Consultoría", Slug: "consultoria", Icon: "briefcase", Type: model.CategoryTypePrimary, OrderIndex: 3, Status: model.CategoryStatusActive},
	}

	for i := range primaries {
		result := db.FirstOrCreate(&primaries[i], model.ServiceCategory{Slug: primaries[i].Slug})
		if result.Error != nil {
			log.Printf("Error creating category %s: %v", primaries[i].Name, result.Error)
		}
	}

	secondaries := []struct {
		category   model.ServiceCategory
		parentSlug string
	}{
		{model.ServiceCategory{Name: "Sitios para restaurantes", Slug: "sitios-restaurantes", Icon: "utensils", Type: model.CategoryTypeSecondary, OrderIndex: 1, Status: model.CategoryStatusActive, DemoSlug: "demo-restaurante"}, "desarrollo-web"},
		{model.ServiceCategory{Name: "Tiendas en línea", Slug: "tiendas-en-linea", Icon: "shopping-cart", Type: model.CategoryTypeSecondary, OrderIndex: 2, Status: model.CategoryStatusActive, DemoSlug: "demo-tienda"}, "desarrollo-web"},
		{model.ServiceCategory{Name: "Redes sociales", Slug: "redes-sociales", Icon: "share", Type: model.CategoryTypeSecondary, OrderIndex: 1, Status: model.CategoryStatusActive}, "marketing-digital"},
	}

	for _, s := range secondaries {
		var parent model.ServiceCategory
		if err := db.Where("slug = ?", s.parentSlug).First(&parent).Error; err != nil {
			continue
		}
		s.category.ParentID = &parent.ID
		result := db.FirstOrCreate(&s.category, model.ServiceCategory{Slug: s.category.Slug})
		if result.Error != nil {
			log.Printf("Error creating category %s: %v", s.category.Name, result.Error)
		}
	}

	log.Println("Service categories seeded successfully!")
}

func SeedSiteConfig(db *gorm.DB) {
	defaults := map[string]interface{}{
		"contact_info": map[string]string{
			"address":  "Ciudad de México, México",
			"email":    "hola@devri.com.mx",
			"phone":    "+52 55 0000 0000",
			"whatsapp": "+52 55 0000 0000",
			"hours":    "Lun-Vie 9:00-18:00",
		},
		"seo_defaults": map[string]string{
			"title":       "DEVRI — Desarrollo, Marketing y Consultoría",
			"description": "Sitios web por suscripción para pequeños negocios.",
			"keywords":    "desarrollo web, marketing digital, consultoría",
		},
	}

	for key, value := range defaults {
		raw, err := json.Marshal(value)
		if err != nil {
			continue
		}
		config := model.SiteConfig{Key: key, Value: raw}
		result := db.FirstOrCreate(&config, model.SiteConfig{Key: key})
		if result.Error != nil {
			log.Printf("Error creating site config %s: %v", key, result.Error)
		}
	}

	log.Println("Site config seeded successfully!")
}
