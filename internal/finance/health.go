package finance

// Health classifies the statement into a verdict tier by net margin, with
// boundaries at 30/20/10/0. Each tier carries fixed recommendation text;
// a weak or negative ROI appends one extra recommendation regardless of
// tier. Total over every real-valued input.
func Health(st Statement) HealthReport {
	var report HealthReport

	switch margin := st.NetMarginPercent; {
	case margin >= 30:
		report.Level = HealthExcelente
		report.Message = "¡Excelente! Tu negocio es muy rentable"
	case margin >= 20:
		report.Level = HealthBueno
		report.Message = "Buen desempeño financiero"
		report.Recommendations = append(report.Recommendations,
			"Busca oportunidades para aumentar el margen")
	case margin >= 10:
		report.Level = HealthRegular
		report.Message = "Margen aceptable, pero hay espacio para mejorar"
		report.Recommendations = append(report.Recommendations,
			"Revisa tus gastos operativos",
			"Considera aumentar precios o reducir costos")
	case margin >= 0:
		report.Level = HealthMalo
		report.Message = "Margen bajo, necesitas tomar acción"
		report.Recommendations = append(report.Recommendations,
			"Urgente: reduce gastos innecesarios",
			"Analiza qué productos son menos rentables",
			"Renegocia con proveedores")
	default:
		report.Level = HealthCritico
		report.Message = "¡Alerta! Estás operando con pérdidas"
		report.Recommendations = append(report.Recommendations,
			"CRÍTICO: Revisa inmediatamente tu estructura de costos",
			"Considera suspender productos no rentables",
			"Busca asesoría financiera")
	}

	if st.ROIPercent < 0 {
		report.Recommendations = append(report.Recommendations,
			"ROI negativo: estás perdiendo dinero en tu inversión")
	} else if st.ROIPercent < 20 {
		report.Recommendations = append(report.Recommendations,
			"ROI bajo: busca formas de mejorar el retorno de inversión")
	}

	return report
}
