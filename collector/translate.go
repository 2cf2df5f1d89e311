package collector

import (
	"github.com/HavvokLab/contact-sync/api/hubspot"
	"github.com/HavvokLab/contact-sync/model"
)

func TranslateContact(contact hubspot.Contact) model.User {
	return model.User{
		FName: contact.Properties.Firstname,
		LName: contact.Properties.Lastname,
	}
}

// TranslateContacts keeps the page order and reuses the contact id as the
// document id.
func TranslateContacts(contacts []hubspot.Contact) []model.IdentifiedUser {
	users := make([]model.IdentifiedUser, 0, len(contacts))
	for _, contact := range contacts {
		users = append(users, model.IdentifiedUser{
			ID:   contact.ID,
			User: TranslateContact(contact),
		})
	}

	return users
}
