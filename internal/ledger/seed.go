package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/bairooha/donordesk/internal/models"
)

const placeholderImage = "https://placehold.co/600x400.png"

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func seedProjects() []models.Project {
	return []models.Project{
		{
			ID:          "proj-1",
			Name:        "Mukkam Muslim Orphanage",
			Description: "Providing care and education for orphaned children.",
			Goal:        amount(50000),
			Media: []models.ProjectMedia{
				{
					ID:          "media-1",
					Type:        models.MediaImage,
					Before:      placeholderImage,
					After:       placeholderImage,
					Description: "New well construction site before and after completion.",
				},
				{
					ID:          "media-2",
					Type:        models.MediaStory,
					Before:      "Villagers had to walk 5 miles every day to fetch water from a contaminated river.",
					After:       "With the new well, clean water is now accessible within the village, drastically improving health and daily life.",
					Description: "A local resident shares their story.",
				},
			},
		},
		{
			ID:          "proj-2",
			Name:        "JDT Islam Orphanage & School",
			Description: "A leading institution for education and social welfare.",
			Goal:        amount(75000),
			Media: []models.ProjectMedia{
				{
					ID:          "media-3",
					Type:        models.MediaImage,
					Before:      placeholderImage,
					After:       placeholderImage,
					Description: "The old, dilapidated classroom vs. the newly constructed one.",
				},
			},
		},
		{ID: "proj-3", Name: "kerala jama-ath council charitable trust", Description: "Promoting higher education and islamic studies.", Goal: amount(100000)},
		{ID: "proj-4", Name: "Markazu Ssaqafathi Ssunniyya", Description: "Cultural and educational center for the community.", Goal: amount(25000)},
		{ID: "proj-5", Name: "Samastha Vidyabhyasa Board", Description: "Educational board promoting moral and secular education.", Goal: amount(200000)},
	}
}

// seedPayments returns the starter ledger. Several entries are dated
// today so the dashboard has a live leaderboard out of the box.
func seedPayments(today models.Date) []models.Transaction {
	d := models.MustParseDate
	pay := func(id, donor string, amt int64, date models.Date, projectID, projectName string, mode models.TransactionMode, reason string) models.Transaction {
		return models.Transaction{
			ID: id, DonorName: donor, Amount: amount(amt), Date: date,
			ProjectID: projectID, ProjectName: projectName, Mode: mode, Reason: reason,
		}
	}

	const (
		p1 = "Mukkam Muslim Orphanage"
		p2 = "JDT Islam Orphanage & School"
		p3 = "kerala jama-ath council charitable trust"
		p4 = "Markazu Ssaqafathi Ssunniyya"
		p5 = "Samastha Vidyabhyasa Board"
	)

	payments := []models.Transaction{
		pay("pay-1", "Aisha Rahman", 500, d("2024-07-22"), "proj-1", p1, models.ModeOnline, "Annual charity contribution."),
		pay("pay-2", "Biju Varghese", 250, d("2024-07-21"), "proj-2", p2, models.ModeWallet, "General donation."),
		pay("pay-3", "Chandran Pillai", 1000, d("2024-07-20"), "proj-3", p3, models.ModeManual, "In memory of my grandfather."),
		pay("pay-4", "Divya Menon", 150, d("2024-07-19"), "proj-4", p4, models.ModeOnline, "In support of animal welfare."),
		pay("pay-5", "Elias K. Joseph", 750, d("2024-07-18"), "proj-5", p5, models.ModeRefund, "Refund requested as donation was intended for a different educational initiative."),
		pay("pay-6", "Fathima Basheer", 300, d("2024-07-17"), "proj-1", p1, models.ModeWallet, "Contribution to clean water access."),
		pay("pay-7", "Gopalakrishnan Nair", 50, d("2024-07-16"), "proj-2", p2, models.ModeOnline, "Supporting education initiatives."),
		pay("pay-8", "Hafsa Ibrahim", 2000, d("2024-07-15"), "proj-3", p3, models.ModeManual, "Donation towards healthcare services."),
		pay("pay-9", "Ravi Kumar", 5000, today, "proj-5", p5, models.ModeWallet, "For the children."),
		pay("pay-10", "Suresh Gopi", 3000, today, "proj-2", p2, models.ModeOnline, "Helping build schools."),
		pay("pay-11", "Arun Prasad", 100, today, "proj-4", p4, models.ModeManual, "For the care of shelter animals."),
		pay("pay-12", "Vinod Sharma", 2500, today, "proj-3", p3, models.ModeOnline, "Matching employee donations."),
		pay("pay-13", "Sandeep Kumar", 1, today, "proj-1", p1, models.ModeOnline, "Test 1"),
		pay("pay-14", "Sandeep Kumar", 1, today, "proj-1", p1, models.ModeOnline, "Test 2"),
		pay("pay-15", "Sandeep Kumar", 1, today, "proj-1", p1, models.ModeOnline, "Test 3"),
		pay("pay-16", "Sandeep Kumar", 500, today, "proj-1", p1, models.ModeRefund, "Refunding large amount after tests."),
	}
	payments[0].DonorEmail, payments[0].DonorPhone = "aisha.r@example.com", "9876543210"
	payments[1].DonorEmail, payments[1].DonorPhone = "biju.v@example.com", "9876543211"
	payments[8].DonorEmail = "ravi.k@example.com"
	payments[9].DonorEmail = "suresh.g@example.com"
	return payments
}

func seedDebits() []models.Debit {
	d := models.MustParseDate
	return []models.Debit{
		{ID: "debit-1", ProjectID: "proj-1", ProjectName: "Mukkam Muslim Orphanage", Date: d("2024-07-20"), Amount: amount(5000),
			Description: "Purchase of water filters", Reason: "Replacement of old, expired filters."},
		{ID: "debit-2", ProjectID: "proj-2", ProjectName: "JDT Islam Orphanage & School", Date: d("2024-07-18"), Amount: amount(12000),
			Description: "Printing and distributing textbooks", Reason: "New curriculum materials for the upcoming school year."},
		{ID: "debit-3", ProjectID: "proj-3", ProjectName: "kerala jama-ath council charitable trust", Date: d("2024-07-15"), Amount: amount(25000),
			Description: "Medical supplies for mobile clinic", Reason: "Restocking essential medicines and equipment for Q3."},
	}
}

const avatarPlaceholder = "https://placehold.co/100x100.png"

func seedStaff() []models.StaffMember {
	member := func(id, name, email string, p models.Permissions, start, end string) models.StaffMember {
		return models.StaffMember{
			ID: id, Name: name, Email: email, Role: models.RoleFor(p), Avatar: avatarPlaceholder,
			Permissions: p, WorkingHours: models.WorkingHours{Start: start, End: end},
		}
	}
	return []models.StaffMember{
		member("staff-1", "Admin User", "admin@bairoohafoundation.com",
			models.Permissions{Dashboard: true, Projects: true, Emergency: true, Payments: true, Donors: true, Staff: true}, "09:00", "17:00"),
		member("staff-2", "Priya Nair", "priya.nair@bairoohafoundation.com",
			models.Permissions{Dashboard: true, Projects: true, Emergency: true}, "09:00", "17:00"),
		member("staff-3", "Rajesh Kumar", "rajesh.kumar@bairoohafoundation.com",
			models.Permissions{Dashboard: true, Payments: true, Donors: true}, "10:00", "18:00"),
		member("staff-4", "Anu Thomas", "anu.thomas@bairoohafoundation.com",
			models.Permissions{Dashboard: true, Projects: true, Emergency: true, Payments: true}, "08:30", "16:30"),
	}
}

func seedCampaigns() []models.EmergencyCampaign {
	return []models.EmergencyCampaign{}
}
