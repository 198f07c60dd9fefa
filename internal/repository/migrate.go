package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the repositories use. On
// postgres it also installs the exclusion constraint that rejects
// overlapping stays at the database level.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&roomTypeModel{},
		&roomModel{},
		&bookingModel{},
		&serviceItemModel{},
		&serviceLineModel{},
		&paymentModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return createBookingOverlapConstraint(db)
	}
	return nil
}

// Two non-cancelled bookings on one room may not share a night.
// daterange defaults to the half-open [) bounds, so back-to-back stays
// pass. Violations raise SQLSTATE 23P01, which the booking repository
// maps to domain.ErrConflict. Postgres has no ADD CONSTRAINT IF NOT
// EXISTS; the DO block swallows the duplicate on re-migration.
const bookingOverlapDDL = `
DO $$
BEGIN
    ALTER TABLE bookings
        ADD CONSTRAINT bookings_room_stay_excl
        EXCLUDE USING gist (
            room_id WITH =,
            daterange(check_in::date, check_out::date) WITH &&
        ) WHERE (status <> 'cancelled');
EXCEPTION
    WHEN duplicate_object THEN NULL;
    WHEN duplicate_table THEN NULL;
END
$$`

func createBookingOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}
	return db.Exec(bookingOverlapDDL).Error
}
