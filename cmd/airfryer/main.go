// airfryer converts oven recipes to air-fryer settings and runs a
// cook-along countdown for the result.
//
// Usage:
//
//	airfryer convert "400F 20 min frozen"
//	airfryer convert --temp 200 --unit C --time 45 --category raw_meats
//	airfryer categories
//	airfryer timer --temp 400 --time 30 --category veg
//	airfryer timer status
package main

func main() {
	Execute()
}
