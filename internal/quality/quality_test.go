package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashathullah/voter-shield/internal/voter"
)

func TestAnnotateCompleteRecordHasNoFlags(t *testing.T) {
	age := 42
	records := []voter.Record{{
		EPICID:  "ABC1234567",
		Name:    "Jane Doe",
		HouseNo: "12",
		Age:     &age,
		Gender:  "F",
	}}
	Annotate(records)
	assert.Equal(t, 0, records[0].TotalFlags)
	assert.Empty(t, records[0].FlagReasons)
	assert.Empty(t, records[0].Explanation1)
}

func TestAnnotateMissingFieldsAreFlagged(t *testing.T) {
	records := []voter.Record{{Name: "Jane Doe"}}
	Annotate(records)
	assert.Equal(t, 4, records[0].TotalFlags)
	assert.Equal(t, "missing_epic_id;missing_house_no;missing_age;missing_gender", records[0].FlagReasons)
	assert.Equal(t, "Missing: epic_id, house_no, age, gender", records[0].Explanation1)
}

func TestAnnotateDoesNotCheckRelativeNames(t *testing.T) {
	age := 20
	records := []voter.Record{{
		EPICID:  "ABC1234567",
		Name:    "Jane Doe",
		HouseNo: "12",
		Age:     &age,
		Gender:  "F",
		// FatherName/MotherName/HusbandName/OtherName intentionally blank.
	}}
	Annotate(records)
	assert.Equal(t, 0, records[0].TotalFlags)
}

func TestAnnotateBlankStringCountsAsMissing(t *testing.T) {
	age := 20
	records := []voter.Record{{
		EPICID:  "  ",
		Name:    "Jane Doe",
		HouseNo: "12",
		Age:     &age,
		Gender:  "F",
	}}
	Annotate(records)
	assert.Equal(t, 1, records[0].TotalFlags)
	assert.Equal(t, "missing_epic_id", records[0].FlagReasons)
}
