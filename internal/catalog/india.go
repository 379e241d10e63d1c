package catalog

import "github.com/couchcryptid/hazard-risk-service/internal/domain"

func region(lat, lon, radius float64, tier domain.Tier, name, state, details string) HazardRegion {
	return HazardRegion{
		Center:       domain.Coordinate{Lat: lat, Lon: lon},
		RadiusMeters: radius,
		BaselineTier: tier,
		Name:         name,
		State:        state,
		Details:      details,
	}
}

func point(name string, lat, lon, radius, weight float64) ReferencePoint {
	return ReferencePoint{
		Name:         name,
		Center:       domain.Coordinate{Lat: lat, Lon: lon},
		RadiusMeters: radius,
		Weight:       weight,
	}
}

// India returns the built-in hazard catalog for India.
func India() Data {
	return Data{
		Regions: map[domain.HazardType][]HazardRegion{
			domain.Flood: {
				region(26.2006, 92.9376, 50000, domain.TierHigh, "Assam Valley", "Assam", "Brahmaputra river flooding, annual monsoon impact"),
				region(22.9868, 87.8550, 40000, domain.TierHigh, "Gangetic Plains", "West Bengal", "River Ganges overflow, cyclonic storms from Bay of Bengal"),
				region(19.7515, 75.7139, 45000, domain.TierHigh, "Western Maharashtra", "Maharashtra", "Heavy monsoon rains, river Krishna flooding"),
				region(30.7333, 76.7794, 35000, domain.TierMedium, "Punjab Rivers", "Punjab", "Sutlej and Beas river flooding during monsoon"),
				region(21.2787, 81.8661, 50000, domain.TierHigh, "Chhattisgarh Basin", "Chhattisgarh", "Mahanadi river system, heavy rainfall flooding"),
				region(10.8505, 76.2711, 30000, domain.TierHigh, "Kerala Coast", "Kerala", "Southwest monsoon, coastal and river flooding"),
				region(25.0961, 85.3131, 45000, domain.TierHigh, "Bihar Plains", "Bihar", "Ganges and tributaries flooding, flat topography"),
				region(20.9517, 85.0985, 40000, domain.TierHigh, "Odisha Coast", "Odisha", "Cyclonic storms, deltaic region flooding"),
			},
			domain.Earthquake: {
				region(34.0837, 74.7973, 80000, domain.TierCritical, "Kashmir Valley", "Jammu & Kashmir", "Zone V seismic activity, major fault lines, frequent tremors"),
				region(32.2432, 77.1892, 60000, domain.TierHigh, "Himachal Hills", "Himachal Pradesh", "Himalayan seismic belt, active tectonic plates"),
				region(27.0238, 88.2636, 40000, domain.TierHigh, "Sikkim Region", "Sikkim", "Eastern Himalayan seismic zone, Nepal earthquake impact"),
				region(26.2006, 92.9376, 70000, domain.TierCritical, "Assam Seismic Zone", "Assam", "Highest seismic activity in India, frequent earthquakes"),
				region(23.6102, 92.4219, 50000, domain.TierHigh, "Mizoram Hills", "Mizoram", "Indo-Myanmar seismic belt, tectonic activity"),
				region(30.0668, 79.0193, 55000, domain.TierHigh, "Uttarakhand Region", "Uttarakhand", "Central seismic gap, Himalayan fault system"),
				region(23.0225, 72.5714, 45000, domain.TierMedium, "Gujarat Region", "Gujarat", "2001 Bhuj earthquake zone, active fault lines"),
				region(18.5204, 73.8567, 35000, domain.TierMedium, "Western Maharashtra", "Maharashtra", "Koyna region seismic activity, reservoir induced"),
			},
			domain.Landslide: {
				region(11.1271, 76.0795, 25000, domain.TierCritical, "Wayanad Hills", "Kerala", "Recent catastrophic landslides, steep terrain, heavy rainfall"),
				region(32.2432, 77.1892, 40000, domain.TierCritical, "Himachal Pradesh", "Himachal Pradesh", "Unstable slopes, deforestation, road cutting activities"),
				region(30.0668, 79.0193, 35000, domain.TierHigh, "Uttarakhand Hills", "Uttarakhand", "2013 Kedarnath disaster zone, fragile geology"),
				region(27.0410, 88.2663, 20000, domain.TierHigh, "Darjeeling Hills", "West Bengal", "Tea garden slopes, monsoon triggered landslides"),
				region(25.4670, 91.3662, 25000, domain.TierMedium, "Meghalaya Plateau", "Meghalaya", "Coal mining activities, heavy rainfall, loose soil"),
				region(19.2183, 72.9781, 20000, domain.TierMedium, "Mumbai Hills", "Maharashtra", "Monsoon rains, urban development on slopes"),
				region(11.4064, 76.6932, 18000, domain.TierMedium, "Nilgiri Hills", "Tamil Nadu", "Western Ghats region, tea plantations, slope instability"),
				region(10.2381, 77.4892, 15000, domain.TierMedium, "Kodaikanal Hills", "Tamil Nadu", "Hill station area, deforestation impacts"),
			},
			domain.Cyclone: {
				region(19.8135, 85.8312, 60000, domain.TierCritical, "Odisha Coast", "Odisha", "Bay of Bengal cyclones, Super Cyclone 1999 zone"),
				region(15.9129, 79.7400, 50000, domain.TierHigh, "Andhra Coast", "Andhra Pradesh", "Frequent cyclonic storms from Bay of Bengal"),
				region(11.0168, 79.8145, 45000, domain.TierHigh, "Tamil Nadu Coast", "Tamil Nadu", "Northeast monsoon cyclones, Chennai floods"),
				region(21.5222, 87.9523, 40000, domain.TierHigh, "Bengal Coast", "West Bengal", "Frequent cyclones, Sundarbans delta region"),
				region(21.7679, 72.1519, 55000, domain.TierMedium, "Gujarat Coast", "Gujarat", "Arabian Sea cyclones, industrial coastline"),
			},
			domain.Drought: {
				region(27.0238, 74.2179, 80000, domain.TierHigh, "Rajasthan Desert", "Rajasthan", "Thar desert, low rainfall, water scarcity"),
				region(19.0176, 76.2711, 60000, domain.TierHigh, "Marathwada", "Maharashtra", "Rain shadow region, frequent droughts"),
				region(15.3173, 75.7139, 50000, domain.TierMedium, "North Karnataka", "Karnataka", "Deccan plateau, erratic rainfall patterns"),
				region(18.1124, 79.0193, 45000, domain.TierMedium, "Telangana Region", "Telangana", "Semi-arid climate, dependent on monsoons"),
			},
		},

		Rivers: []ReferencePoint{
			point("Ganges", 25.3, 83.0, 50000, 15),
			point("Brahmaputra", 26.2, 90.6, 50000, 20),
			point("Yamuna", 28.4, 77.3, 50000, 12),
			point("Godavari", 18.7, 82.8, 50000, 10),
			point("Krishna", 16.2, 81.1, 50000, 10),
			point("Narmada", 22.8, 79.9, 50000, 8),
		},
		FaultZones: []ReferencePoint{
			point("Kashmir fault", 34.1, 74.8, 200000, 25),
			point("Assam gap", 26.2, 92.9, 200000, 30),
			point("Kachchh fault", 23.0, 70.0, 200000, 20),
		},
		UnstableSlopes: []ReferencePoint{
			point("Uttarakhand hills", 30.1, 79.0, 100000, 20),
			point("Himachal hills", 32.2, 77.2, 100000, 20),
			point("Western Ghats Kerala", 11.1, 76.1, 100000, 20),
		},
		Coastline: []ReferencePoint{
			point("Kerala coast", 8.5, 76.9, 100000, 25),
			point("Tamil Nadu coast", 11.1, 79.8, 100000, 25),
			point("Andhra Pradesh coast", 15.9, 80.3, 100000, 25),
			point("Odisha coast", 20.3, 85.8, 100000, 25),
			point("West Bengal coast", 22.3, 88.4, 100000, 25),
			point("Maharashtra coast", 19.1, 72.9, 100000, 25),
			point("Gujarat coast", 21.8, 72.2, 100000, 25),
		},

		Safety: map[domain.HazardType]SafetyGuide{
			domain.Flood: {
				Before: []string{
					"Stay informed about weather forecasts and flood warnings",
					"Keep emergency supplies ready (food, water, medications)",
					"Identify higher ground evacuation routes",
					"Secure important documents in waterproof containers",
				},
				During: []string{
					"Move to higher ground immediately",
					"Avoid walking or driving through flood water",
					"Stay away from electrical lines and equipment",
					"Listen to emergency broadcasts for updates",
				},
				After: []string{
					"Return only when authorities declare it safe",
					"Avoid flood-damaged buildings and infrastructure",
					"Boil water before drinking if supplies may be contaminated",
					"Document damage for insurance claims",
				},
			},
			domain.Earthquake: {
				Before: []string{
					"Secure heavy furniture and appliances to walls",
					"Know safe spots in each room (under sturdy tables)",
					"Practice earthquake drills with family",
					"Keep emergency kit accessible",
				},
				During: []string{
					"Drop, Cover, and Hold On",
					"Stay where you are - do not run outside",
					"If outdoors, move away from buildings and power lines",
					"If driving, stop safely and stay in vehicle",
				},
				After: []string{
					"Check for injuries and provide first aid",
					"Inspect home for damage before entering",
					"Be prepared for aftershocks",
					"Stay tuned to emergency broadcasts",
				},
			},
			domain.Landslide: {
				Before: []string{
					"Learn about landslide risk in your area",
					"Monitor rainfall and slope conditions",
					"Plan evacuation routes and practice them",
					"Avoid building on steep slopes",
				},
				During: []string{
					"Move away from the path of the landslide",
					"Run to the nearest high ground perpendicular to flow",
					"Avoid river valleys and low-lying areas",
					"Listen for unusual sounds indicating moving debris",
				},
				After: []string{
					"Stay away from the slide area",
					"Watch for flooding which may occur after landslides",
					"Check for and report broken utility lines",
					"Allow experts to inspect slope stability",
				},
			},
			domain.Cyclone: {
				Before: []string{
					"Monitor weather forecasts and cyclone warnings",
					"Secure or remove outdoor objects",
					"Stock up on food, water, and essential supplies",
					"Reinforce windows with shutters or boards",
				},
				During: []string{
					"Stay indoors and away from windows",
					"Do not go outside during the eye of the storm",
					"Stay in the strongest part of your building",
					"Listen to battery-powered radio for updates",
				},
				After: []string{
					"Wait for official all-clear before going outside",
					"Watch for flooding and storm surge",
					"Avoid downed power lines and damaged buildings",
					"Help neighbors but do not enter damaged structures",
				},
			},
			domain.Drought: {
				Before: []string{
					"Conserve water during normal times",
					"Install water-efficient fixtures and appliances",
					"Plant drought-resistant vegetation",
					"Learn about water sources in your area",
				},
				During: []string{
					"Follow water use restrictions strictly",
					"Prioritize water use for drinking and cooking",
					"Check on elderly neighbors and relatives",
					"Report water waste to authorities",
				},
				After: []string{
					"Continue water conservation practices",
					"Replant with drought-resistant species",
					"Implement long-term water saving measures",
					"Support community water management efforts",
				},
			},
		},

		Contacts: Contacts{
			National: []Contact{
				{Name: "National Emergency", Number: "112"},
				{Name: "Disaster Management", Number: "1078"},
				{Name: "Police", Number: "100"},
				{Name: "Fire", Number: "101"},
				{Name: "Ambulance", Number: "102"},
				{Name: "NDRF", Number: "011-24363260"},
			},
			ControlRooms: []Contact{
				{Name: "Delhi", Number: "011-23438091"},
				{Name: "Mumbai", Number: "022-22027990"},
				{Name: "Chennai", Number: "044-25619131"},
				{Name: "Kolkata", Number: "033-22143526"},
				{Name: "Bangalore", Number: "080-22425403"},
				{Name: "Hyderabad", Number: "040-27853508"},
			},
		},

		Vulnerability: []domain.RegionProfile{
			profile("Assam", domain.Flood, domain.Earthquake, domain.Landslide),
			profile("West Bengal", domain.Cyclone, domain.Flood, domain.Earthquake),
			profile("Kerala", domain.Flood, domain.Landslide, domain.Cyclone),
			profile("Odisha", domain.Cyclone, domain.Flood, domain.Drought),
			profile("Maharashtra", domain.Flood, domain.Drought, domain.Earthquake),
			profile("Gujarat", domain.Earthquake, domain.Cyclone, domain.Drought),
			profile("Rajasthan", domain.Drought, domain.Flood, domain.Earthquake),
			profile("Himachal Pradesh", domain.Earthquake, domain.Landslide, domain.Flood),
			profile("Uttarakhand", domain.Landslide, domain.Earthquake, domain.Flood),
			profile("Tamil Nadu", domain.Cyclone, domain.Flood, domain.Drought),
			profile("Andhra Pradesh", domain.Cyclone, domain.Flood, domain.Drought),
			profile("Karnataka", domain.Drought, domain.Flood, domain.Earthquake),
			profile("Punjab", domain.Flood, domain.Drought, domain.Earthquake),
			profile("Haryana", domain.Drought, domain.Flood, domain.Earthquake),
			profile("Bihar", domain.Flood, domain.Earthquake, domain.Drought),
			profile("Jharkhand", domain.Flood, domain.Drought, domain.Earthquake),
			profile("Chhattisgarh", domain.Flood, domain.Drought, domain.Earthquake),
			profile("Madhya Pradesh", domain.Flood, domain.Drought, domain.Earthquake),
			profile("Uttar Pradesh", domain.Flood, domain.Earthquake, domain.Drought),
		},

		History: []HistoricalDisaster{
			{Hazard: domain.Earthquake, Year: 2001, Location: "Bhuj, Gujarat", Magnitude: 7.7},
			{Hazard: domain.Earthquake, Year: 2005, Location: "Kashmir", Magnitude: 7.6},
			{Hazard: domain.Earthquake, Year: 2011, Location: "Sikkim", Magnitude: 6.9},
			{Hazard: domain.Earthquake, Year: 2015, Location: "Nepal (affecting North India)", Magnitude: 7.8},
			{Hazard: domain.Flood, Year: 2013, Location: "Kedarnath, Uttarakhand"},
			{Hazard: domain.Flood, Year: 2018, Location: "Kerala"},
			{Hazard: domain.Flood, Year: 2019, Location: "Assam, Bihar"},
			{Hazard: domain.Flood, Year: 2020, Location: "Hyderabad, Telangana"},
			{Hazard: domain.Landslide, Year: 2013, Location: "Kedarnath, Uttarakhand"},
			{Hazard: domain.Landslide, Year: 2017, Location: "Himachal Pradesh"},
			{Hazard: domain.Landslide, Year: 2018, Location: "Kerala, Kodagu"},
			{Hazard: domain.Landslide, Year: 2024, Location: "Wayanad, Kerala"},
			{Hazard: domain.Cyclone, Year: 1999, Location: "Super Cyclone, Odisha"},
			{Hazard: domain.Cyclone, Year: 2014, Location: "Cyclone Hudhud, Andhra Pradesh"},
			{Hazard: domain.Cyclone, Year: 2019, Location: "Cyclone Fani, Odisha"},
			{Hazard: domain.Cyclone, Year: 2020, Location: "Cyclone Amphan, West Bengal"},
		},

		DemoCities: []City{
			{Name: "New Delhi", Location: domain.Coordinate{Lat: 28.6139, Lon: 77.2090}},
			{Name: "Mumbai", Location: domain.Coordinate{Lat: 19.0760, Lon: 72.8777}},
			{Name: "Kolkata", Location: domain.Coordinate{Lat: 22.5726, Lon: 88.3639}},
			{Name: "Chennai", Location: domain.Coordinate{Lat: 13.0827, Lon: 80.2707}},
			{Name: "Bangalore", Location: domain.Coordinate{Lat: 12.9716, Lon: 77.5946}},
			{Name: "Hyderabad", Location: domain.Coordinate{Lat: 17.3850, Lon: 78.4867}},
		},
	}
}

func profile(state string, primary, secondary, tertiary domain.HazardType) domain.RegionProfile {
	return domain.RegionProfile{State: state, Primary: primary, Secondary: secondary, Tertiary: tertiary}
}
