package propkv

import (
	"testing"
	"time"
)

var (
	tick1 = time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)
	tick2 = time.Date(2024, time.March, 6, 11, 45, 0, 0, time.UTC)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDateTimeValidate(t *testing.T) {
	p := DateTimeProp()
	deepEqual[any](t, must(p.Validate(tick1)), tick1)
	wantInvalid(t, second(p.Validate("2024-03-05")))
	wantInvalid(t, second(p.Validate(Date{2024, time.March, 5})))
}

func TestAutoNowAdd(t *testing.T) {
	p := DateTimeProp(AutoNowAdd)
	p.nowFn = fixedClock(tick1)
	_, rec := singlePropModel(t, p)

	ensure(p.PrepareForPut(rec))
	deepEqual[any](t, must(rec.Get("v")), tick1)

	// a second put leaves the existing value alone
	p.nowFn = fixedClock(tick2)
	ensure(p.PrepareForPut(rec))
	deepEqual[any](t, must(rec.Get("v")), tick1)
}

func TestAutoNowAddSkipsExplicitValue(t *testing.T) {
	p := DateTimeProp(AutoNowAdd)
	p.nowFn = fixedClock(tick2)
	_, rec := singlePropModel(t, p)
	ensure(rec.Set("v", tick1))
	ensure(p.PrepareForPut(rec))
	deepEqual[any](t, must(rec.Get("v")), tick1)
}

func TestAutoNowOverwritesEveryPut(t *testing.T) {
	p := DateTimeProp(AutoNow)
	p.nowFn = fixedClock(tick1)
	_, rec := singlePropModel(t, p)

	ensure(p.PrepareForPut(rec))
	deepEqual[any](t, must(rec.Get("v")), tick1)

	p.nowFn = fixedClock(tick2)
	ensure(p.PrepareForPut(rec))
	deepEqual[any](t, must(rec.Get("v")), tick2)
}

func TestAutoNowRepeatedPanics(t *testing.T) {
	wantConfigPanic(t, func() {
		DateTimeProp(AutoNow, Repeated)
	})
	wantConfigPanic(t, func() {
		DateTimeProp(AutoNowAdd, Repeated)
	})
}

func TestAutoNowOnNonTemporalPanics(t *testing.T) {
	wantConfigPanic(t, func() {
		IntProp(AutoNow)
	})
}

func TestDateWidening(t *testing.T) {
	p := DateProp()
	d := Date{2024, time.March, 5}
	base := must(p.ToBaseType(d))
	deepEqual[any](t, base, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	deepEqual[any](t, must(p.FromBaseType(base)), d)
}

func TestDateValidate(t *testing.T) {
	p := DateProp()
	wantInvalid(t, second(p.Validate(tick1)))
	wantInvalid(t, second(p.Validate("2024-03-05")))
}

func TestTimeOfDayEpochSentinel(t *testing.T) {
	p := TimeProp()
	td := TimeOfDay{13, 45, 30, 0}
	base := must(p.ToBaseType(td))
	deepEqual[any](t, base, time.Date(1970, time.January, 1, 13, 45, 30, 0, time.UTC))
	deepEqual[any](t, must(p.FromBaseType(base)), td)
}

func TestTimeOfDayValidate(t *testing.T) {
	p := TimeProp()
	wantInvalid(t, second(p.Validate(tick1)))
	wantInvalid(t, second(p.Validate(13*60 + 45)))
}

func TestDateAutoNowAddScenario(t *testing.T) {
	p := DateProp(AutoNowAdd)
	p.nowFn = fixedClock(tick1)
	_, rec := singlePropModel(t, p)

	ensure(p.PrepareForPut(rec))
	today := DateOf(tick1)
	deepEqual[any](t, must(rec.Get("v")), today)

	// stored internally as the midnight timestamp
	deepEqual[any](t, rec.Entity()["v"], today.UTC())
}

func TestDateFromBaseNormalizesZone(t *testing.T) {
	p := DateProp()
	loc := time.FixedZone("east", 5*3600)
	base := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC).In(loc)
	deepEqual[any](t, must(p.FromBaseType(base)), Date{2024, time.March, 5})
}

func TestDateString(t *testing.T) {
	deepEqual(t, Date{2024, time.March, 5}.String(), "2024-03-05")
	deepEqual(t, TimeOfDay{13, 45, 30, 0}.String(), "13:45:30")
	deepEqual(t, TimeOfDay{13, 45, 30, 500}.String(), "13:45:30.000000500")
}
