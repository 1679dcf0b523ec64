// Package reference holds the static lookup rows (application types with their
// fees, license classes, test types) that every store seeds on startup.
package reference

import (
	appmodels "licensing/internal/application/models"
	testmodels "licensing/internal/testcenter/models"
	id "licensing/pkg/domain"
	"licensing/pkg/money"
)

var (
	allTests    = []id.TestTypeID{testmodels.TestTypeVision, testmodels.TestTypeWritten, testmodels.TestTypeStreet}
	theoryTests = []id.TestTypeID{testmodels.TestTypeVision, testmodels.TestTypeWritten}
)

// ApplicationTypes returns the fee table.
func ApplicationTypes() []appmodels.ApplicationType {
	return []appmodels.ApplicationType{
		{ID: appmodels.TypeNewLocalLicense, Title: "New Local Driving License Service", Fee: money.FromUnits(15)},
		{ID: appmodels.TypeRenewLicense, Title: "Renew Driving License Service", Fee: money.FromUnits(7)},
		{ID: appmodels.TypeReplaceLostLicense, Title: "Replacement for a Lost Driving License", Fee: money.FromUnits(10)},
		{ID: appmodels.TypeReplaceDamaged, Title: "Replacement for a Damaged Driving License", Fee: money.FromUnits(5)},
		{ID: appmodels.TypeReleaseDetained, Title: "Release Detained Driving License", Fee: money.FromUnits(15)},
		{ID: appmodels.TypeNewInternational, Title: "New International License", Fee: money.FromUnits(51)},
		{ID: appmodels.TypeRetakeTest, Title: "Retake Test", Fee: money.FromUnits(5)},
	}
}

// LicenseClasses returns the license categories.
func LicenseClasses() []appmodels.LicenseClass {
	return []appmodels.LicenseClass{
		{ID: 1, Name: "Class 1 - Small Motorcycle", Description: "Motorcycles up to 125cc", MinimumAge: 18, DefaultValidityYears: 5, Fee: money.FromUnits(15), RequiredTests: allTests},
		{ID: 2, Name: "Class 2 - Heavy Motorcycle License", Description: "Motorcycles over 125cc", MinimumAge: 21, DefaultValidityYears: 5, Fee: money.FromUnits(30), RequiredTests: allTests},
		{ID: appmodels.ClassOrdinary, Name: "Class 3 - Ordinary driving license", Description: "Private cars up to 3.5t", MinimumAge: 18, DefaultValidityYears: 10, Fee: money.FromUnits(20), RequiredTests: allTests},
		{ID: 4, Name: "Class 4 - Commercial", Description: "Taxis and limousines", MinimumAge: 21, DefaultValidityYears: 10, Fee: money.FromUnits(200), RequiredTests: allTests},
		{ID: 5, Name: "Class 5 - Agricultural", Description: "Tractors and farm machinery", MinimumAge: 21, DefaultValidityYears: 10, Fee: money.FromUnits(50), RequiredTests: allTests},
		{ID: 6, Name: "Class 6 - Small and medium bus", Description: "Buses up to 30 passengers", MinimumAge: 21, DefaultValidityYears: 10, Fee: money.FromUnits(250), RequiredTests: allTests},
		{ID: 7, Name: "Class 7 - Truck and heavy vehicle", Description: "Trucks over 3.5t", MinimumAge: 21, DefaultValidityYears: 10, Fee: money.FromUnits(300), RequiredTests: allTests},
		{ID: appmodels.ClassLightVehicle, Name: "Class B - Light vehicle", Description: "Light cars and quadricycles up to 750kg", MinimumAge: 18, DefaultValidityYears: 10, Fee: money.FromUnits(20), RequiredTests: theoryTests},
	}
}

// TestTypes returns the test kinds in the order they must be taken.
func TestTypes() []testmodels.TestType {
	return []testmodels.TestType{
		{ID: testmodels.TestTypeVision, Title: "Vision Test", Description: "Eyesight assessment", Fee: money.FromUnits(10)},
		{ID: testmodels.TestTypeWritten, Title: "Written (Theory) Test", Description: "Traffic rules and signs", Fee: money.FromUnits(20)},
		{ID: testmodels.TestTypeStreet, Title: "Practical (Street) Test", Description: "On-road driving assessment", Fee: money.FromUnits(35)},
	}
}
