package params

// TariffInputsParams normalizes one tariff input or a collection of them.
// Absent input yields nil; a malformed shape fails with ErrInvalidInput.
func (n *Normalizer) TariffInputsParams(v any) ([]*Fragment, error) {
	return normalizeNested("tariffInputs", v, func(o *Options) (*Fragment, error) {
		return n.ConvertTariffInput(o), nil
	})
}

// ConvertTariffInput maps one tariff input onto its wire fields.
func (n *Normalizer) ConvertTariffInput(o *Options) *Fragment {
	return NewFragment().
		Set("scenarios", o.Lookup("scenarios")).
		Set("fromDateTime", n.FormatISO8601(o.Lookup("from", "from_date_time")).Wire()).
		Set("toDateTime", n.FormatISO8601(o.Lookup("to", "to_date_time")).Wire()).
		Set("keyName", CamelCase(o.Lookup("key_name"))).
		Set("dataValue", o.Lookup("data_value")).
		Set("dataType", ConvertToUpcase(o.Lookup("data_type"))).
		Set("dataFactor", o.Lookup("data_factor")).
		Set("unit", o.Lookup("unit")).
		Set("operator", o.Lookup("operator"))
}

// RateInputsParams normalizes one rate input or a collection of them,
// including their nested rate bands.
func (n *Normalizer) RateInputsParams(v any) ([]*Fragment, error) {
	return normalizeNested("rateInputs", v, n.ConvertRateInput)
}

// ConvertRateInput maps one rate input onto its wire fields.
func (n *Normalizer) ConvertRateInput(o *Options) (*Fragment, error) {
	bands, err := RateBandsParams(o.Lookup("rate_bands"))
	if err != nil {
		return nil, err
	}
	return NewFragment().
		Set("scenarios", o.Lookup("scenarios")).
		Set("fromDateTime", n.FormatISO8601(o.Lookup("from", "from_date_time")).Wire()).
		Set("toDateTime", n.FormatISO8601(o.Lookup("to", "to_date_time")).Wire()).
		Set("chargeType", ConvertToUpcase(o.Lookup("charge_type"))).
		Set("chargeClass", ConvertToUpcase(o.Lookup("charge_class"))).
		Set("tariffBookRateName", o.Lookup("tariff_book_rate_name")).
		Set("rateName", o.Lookup("rate_name")).
		Set("rateGroupName", o.Lookup("rate_group_name")).
		Set("rateBands", bands), nil
}

// RateBandsParams normalizes one rate band or a collection of them.
func RateBandsParams(v any) ([]*Fragment, error) {
	return normalizeNested("rateBands", v, func(o *Options) (*Fragment, error) {
		return ConvertRateBand(o), nil
	})
}

// ConvertRateBand maps one rate band onto its wire fields.
func ConvertRateBand(o *Options) *Fragment {
	return NewFragment().
		Set("rateAmount", o.Lookup("rate_amount")).
		Set("rateUnit", ConvertToUpcase(o.Lookup("rate_unit"))).
		Set("hasConsumptionLimit", ConvertToBoolean(o.Lookup("has_consumption_limit"))).
		Set("isCredit", ConvertToBoolean(o.Lookup("is_credit")))
}

// TariffInputsParams normalizes with the Default normalizer.
func TariffInputsParams(v any) ([]*Fragment, error) {
	return Default.TariffInputsParams(v)
}

// ConvertTariffInput converts with the Default normalizer.
func ConvertTariffInput(o *Options) *Fragment {
	return Default.ConvertTariffInput(o)
}

// RateInputsParams normalizes with the Default normalizer.
func RateInputsParams(v any) ([]*Fragment, error) {
	return Default.RateInputsParams(v)
}

// ConvertRateInput converts with the Default normalizer.
func ConvertRateInput(o *Options) (*Fragment, error) {
	return Default.ConvertRateInput(o)
}
