package weather

// Merge overlays the added forecasts onto main, in order.
//
// Currently is overlaid field by field. For each series the batch that
// starts later is aligned on the first matching time of the other one, and
// only the samples inside that overlap are overwritten; samples of main
// outside the overlap, and main's length, never change. A series that is
// empty on either side is left alone.
func Merge(main *Data, added ...*Data) {
	if main == nil {
		return
	}
	for _, a := range added {
		if a == nil {
			continue
		}
		if a.Currently != nil {
			if main.Currently == nil {
				main.Currently = &Sample{Time: a.Currently.Time}
			}
			main.Currently.Overlay(a.Currently)
		}
		mergeSeries(main.Minutely, a.Minutely)
		mergeSeries(main.Hourly, a.Hourly)
		mergeSeries(main.Daily, a.Daily)
		if len(main.Alerts) == 0 && len(a.Alerts) > 0 {
			main.Alerts = append([]Alert(nil), a.Alerts...)
		}
	}
}

func mergeSeries(main, added []Sample) {
	if len(main) == 0 || len(added) == 0 {
		return
	}

	// offset is the index in main of added[0], negative when added starts first.
	offset := 0
	if added[0].Time >= main[0].Time {
		idx := indexOfTime(main, added[0].Time)
		if idx < 0 {
			return
		}
		offset = idx
	} else {
		idx := indexOfTime(added, main[0].Time)
		if idx < 0 {
			return
		}
		offset = -idx
	}

	for i := max(offset, 0); i < len(main); i++ {
		j := i - offset
		if j >= len(added) {
			break
		}
		if main[i].Time == added[j].Time {
			main[i].Overlay(&added[j])
		}
	}
}

func indexOfTime(series []Sample, t int64) int {
	for i := range series {
		if series[i].Time == t {
			return i
		}
	}
	return -1
}
