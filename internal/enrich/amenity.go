package enrich

func HasRestaurant(name string, keywords []string) bool { return ContainsAny(name, keywords) }

func HasSpa(name string, keywords []string) bool { return ContainsAny(name, keywords) }
