package merge

import (
	"menu-api/internal/dto"
	"menu-api/internal/models"
)

// Category builds the update for PUT /category from a request whose image
// has already been compressed.
func Category(req dto.CategoryUpdateRequest) Update {
	u := NewUpdate()
	u.SetIfSupplied("name", req.Name)
	u.SetIfSupplied("description", req.Description)
	u.SetIfSupplied("image", req.Image)
	u.SetIfSupplied("lang_abbr", req.LangAbbr)
	return u
}

// Product builds the update for PUT /product. Unlike the other builders,
// price, description, calories, image, allergies and addons count as sent
// whenever the key is present; an explicit null removes the field. name and
// category follow Supplied. addons is the parsed form of req.Addons.
func Product(req dto.ProductUpdateRequest, addons []models.Addon) Update {
	u := NewUpdate()
	u.SetIfSupplied("name", req.Name)
	u.SetIfSupplied("category", req.Category)

	if req.Price.Valid() {
		u.Set["price"] = req.Price.Value
	}
	presentOrUnset(u, "description", req.Description)
	presentOrUnset(u, "calories", req.Calories)
	presentOrUnset(u, "allergies", req.Allergies)

	switch {
	case req.Image.Valid() && req.Image.Value != "":
		u.Set["image"] = req.Image.Value
	case req.Image.Present:
		u.Unset["image"] = ""
	}

	if req.Addons.Present {
		if addons == nil {
			addons = []models.Addon{}
		}
		u.Set["addons"] = addons
	}
	return u
}

func presentOrUnset[T any](u Update, path string, o dto.Optional[T]) {
	switch {
	case o.Valid():
		u.Set[path] = o.Value
	case o.Present:
		u.Unset[path] = ""
	}
}

// Content builds the update for PUT /content from a request whose image
// fields already hold compressed values.
//
// Scalars follow Supplied. header_images, info_bar.locations and
// info_bar.allergies replace the stored array whenever a non-null array is
// sent. bg_image is the one field that can be cleared: null or "" removes
// it, absence leaves it alone.
func Content(req dto.ContentUpdateRequest) Update {
	u := NewUpdate()
	u.SetIfSupplied("name", req.Name)
	u.SetIfSupplied("desc", req.Desc)
	u.SetIfSupplied("logo", req.Logo)
	u.SetIfSupplied("lang_abbr", req.LangAbbr)

	if req.HeaderImages.Valid() {
		images := req.HeaderImages.Value
		if images == nil {
			images = []string{}
		}
		u.Set["header_images"] = images
	}

	switch {
	case req.BgImage.Valid() && req.BgImage.Value != "":
		u.Set["bg_image"] = req.BgImage.Value
	case req.BgImage.Present:
		u.Unset["bg_image"] = ""
	}

	if bar := req.InfoBar; bar != nil {
		if bar.Locations.Valid() {
			locations := bar.Locations.Value
			if locations == nil {
				locations = []models.Location{}
			}
			u.Set["info_bar.locations"] = locations
		}
		u.SetIfSupplied("info_bar.info", bar.Info)
		u.SetIfSupplied("info_bar.review.google_map_link", bar.Review.GoogleMapLink)
		u.SetIfSupplied("info_bar.contact.phone_number", bar.Contact.PhoneNumber)
		u.SetIfSupplied("info_bar.contact.whatsapp_number", bar.Contact.WhatsappNumber)
		u.SetIfSupplied("info_bar.contact.email", bar.Contact.Email)
		u.SetIfSupplied("info_bar.social_links.facebook", bar.SocialLinks.Facebook)
		u.SetIfSupplied("info_bar.social_links.twitter", bar.SocialLinks.Twitter)
		u.SetIfSupplied("info_bar.social_links.instagram", bar.SocialLinks.Instagram)
		u.SetIfSupplied("info_bar.social_links.linkedin", bar.SocialLinks.Linkedin)
		u.SetIfSupplied("info_bar.social_links.youtube", bar.SocialLinks.Youtube)
		u.SetIfSupplied("info_bar.share_link", bar.ShareLink)
		if bar.Allergies.Valid() {
			allergies := bar.Allergies.Value
			if allergies == nil {
				allergies = []string{}
			}
			u.Set["info_bar.allergies"] = allergies
		}
	}
	return u
}

// Theme builds the update for PUT /manage/theme. Each known color key with
// a value becomes colors.<key>; unknown keys are dropped.
func Theme(req dto.ThemeUpdateRequest) Update {
	u := NewUpdate()
	for key, value := range req.Colors {
		if !models.ValidColorKey(key) {
			continue
		}
		u.SetIfSupplied("colors."+key, value)
	}
	u.SetIfSupplied("view_style", req.ViewStyle)
	return u
}
